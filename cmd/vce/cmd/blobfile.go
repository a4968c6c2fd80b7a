package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/osamahabbal/GWM-Harman-VCE/intelhex"
	"github.com/osamahabbal/GWM-Harman-VCE/membuf"
	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

const hexRecordLen = 16

// blobFile is a config blob as read from disk. Records is set when the file was
// Intel HEX, so it can be written back with the same layout.
type blobFile struct {
	Path    string
	Data    []byte
	Records []intelhex.Record
}

func isHex(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihex", ".ihx":
		return true
	}
	return false
}

func readBlob(path string) (*blobFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config load failed (%s)", path)
	}
	if !isHex(path) {
		return &blobFile{Path: path, Data: raw}, nil
	}

	buf := membuf.NewMemBuffer()
	parser := intelhex.NewParser(bytes.NewReader(raw), buf)
	if err := parser.ParseAll(); err != nil {
		return nil, errors.Wrapf(err, "config parse failed (%s)", path)
	}
	return &blobFile{Path: path, Data: buf.Bytes(), Records: parser.Records}, nil
}

// checkCoverage fails when an edited byte or the checksum byte falls into an
// address gap of the source HEX records; reusing those records would drop it.
func checkCoverage(src *blobFile, res *vehcfg.Result) error {
	for idx, ok := res.Touched.NextSet(0); ok; idx, ok = res.Touched.NextSet(idx + 1) {
		if !intelhex.Covers(src.Records, int64(idx)) {
			return errors.Wrapf(vehcfg.ErrBounds, "byte %d is not covered by any record of %s", idx, src.Path)
		}
	}
	last := len(res.Data) - 1
	if last >= 0 && !intelhex.Covers(src.Records, int64(last)) {
		return errors.Wrapf(vehcfg.ErrBounds, "checksum byte %d is not covered by any record of %s", last, src.Path)
	}
	return nil
}

// writeBlob stores data at path, as Intel HEX when path has a hex extension.
func writeBlob(path string, data []byte, src *blobFile) error {
	out := data
	if isHex(path) {
		records := intelhex.DataRecords(len(data), hexRecordLen)
		if src != nil && src.Records != nil {
			records = src.Records
		}

		var hexOut bytes.Buffer
		if err := intelhex.NewEncoder(bytes.NewReader(data), &hexOut, records).EncodeRecords(); err != nil {
			return errors.Wrapf(err, "config encode failed (%s)", path)
		}
		out = hexOut.Bytes()
	}

	if err := atomicWriteFile(path, out, 0644); err != nil {
		return errors.Wrapf(err, "config save failed (%s)", path)
	}
	return nil
}

// atomicWriteFile writes data to a file atomically using a temp file in the same directory.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
