package intelhex

import (
	"encoding/hex"
	"io"
	"strings"
)

type Encoder struct {
	r io.ReaderAt
	w io.Writer

	Records []Record
}

// NewEncoder writes records to w, taking the data of TypeData records from r at
// their ReadOffset.
func NewEncoder(r io.ReaderAt, w io.Writer, records []Record) *Encoder {
	return &Encoder{
		r:       r,
		w:       w,
		Records: records,
	}
}

func (e *Encoder) EncodeRecords() error {
	for _, record := range e.Records {
		if err := e.encodeRecord(record); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeRecord(r Record) error {
	raw := make([]byte, 4+int(r.Length)+1)
	raw[0] = r.Length
	raw[1] = byte(r.Offset >> 8)
	raw[2] = byte(r.Offset)
	raw[3] = r.RecType

	body := raw[4 : 4+int(r.Length)]
	if r.RecType == TypeData {
		if _, err := e.r.ReadAt(body, r.ReadOffset); err != nil {
			return err
		}
	} else {
		copy(body, r.Body)
	}
	raw[len(raw)-1] = checksum(raw[:len(raw)-1])

	line := ":" + strings.ToUpper(hex.EncodeToString(raw)) + "\n"
	_, err := io.WriteString(e.w, line)
	return err
}

// DataRecords lays out size bytes as TypeData records of up to recLen bytes each,
// followed by an end of file record. Addresses start at zero; an extended linear
// address record is inserted at every 64 KiB boundary.
func DataRecords(size int, recLen uint8) []Record {
	if recLen == 0 {
		recLen = 16
	}

	var records []Record
	for off := 0; off < size; {
		if off > 0 && off&0xFFFF == 0 {
			upper := uint16(off >> 16)
			records = append(records, Record{
				Length:  2,
				RecType: TypeExtendedLinearAddress,
				Body:    []byte{byte(upper >> 8), byte(upper)},
			})
		}

		n := min(size-off, int(recLen), 0x10000-off&0xFFFF)
		records = append(records, Record{
			Length:     uint8(n),
			Offset:     uint16(off),
			RecType:    TypeData,
			ReadOffset: int64(off),
		})
		off += n
	}
	return append(records, Record{RecType: TypeEOF})
}

// Covers reports whether a TypeData record in records holds the byte at off.
func Covers(records []Record, off int64) bool {
	for _, r := range records {
		if r.RecType == TypeData && off >= r.ReadOffset && off < r.ReadOffset+int64(r.Length) {
			return true
		}
	}
	return false
}
