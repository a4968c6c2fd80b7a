// Package intelhex reads and writes Intel HEX files.
//
// Data records are written to an io.WriterAt as they are parsed; the parsed
// records are kept so the file can be re-encoded with the same layout after the
// data has been modified.
package intelhex

import (
	"bufio"
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Record types.
const (
	TypeData                   uint8 = 0
	TypeEOF                    uint8 = 1
	TypeExtendedSegmentAddress uint8 = 2
	TypeStartSegmentAddress    uint8 = 3
	TypeExtendedLinearAddress  uint8 = 4
	TypeStartLinearAddress     uint8 = 5
)

var (
	ErrMalformed = errors.New("malformed record")
	ErrChecksum  = errors.New("mismatched checksum")
)

type Record struct {
	Length  uint8
	Offset  uint16
	RecType uint8

	// ReadOffset is where the data of a TypeData record was written.
	ReadOffset int64

	// Body is kept for every record type except TypeData.
	Body []byte
}

type Parser struct {
	r *bufio.Reader
	w io.WriterAt

	line                 int
	outputOffset         int64
	baseAddress          uint32
	sawData              bool
	disableCompactOutput bool

	Records []Record

	eof bool
}

type ParserOptions struct {
	disableCompactOutput bool
}

type ParserOption func(*ParserOptions)

// WithDisableCompactOutput writes data at its absolute address instead of
// relative to the first data record.
func WithDisableCompactOutput() ParserOption {
	return func(o *ParserOptions) {
		o.disableCompactOutput = true
	}
}

func NewParser(r io.Reader, w io.WriterAt, opts ...ParserOption) *Parser {
	po := &ParserOptions{}
	for _, opt := range opts {
		opt(po)
	}
	return &Parser{
		r:                    bufio.NewReader(r),
		w:                    w,
		disableCompactOutput: po.disableCompactOutput,
	}
}

// https://en.wikipedia.org/wiki/Intel_HEX#Format
func (p *Parser) ReadRecord() error {
	text, err := p.nextLine()
	if err != nil {
		if err == io.EOF {
			return errors.Wrapf(ErrMalformed, "line %d: missing end of file record", p.line)
		}
		return err
	}

	if text[0] != ':' {
		return errors.Wrapf(ErrMalformed, "line %d: unexpected mark byte %q", p.line, text[0])
	}

	raw, err := hex.DecodeString(text[1:])
	if err != nil {
		return errors.Wrapf(ErrMalformed, "line %d: %v", p.line, err)
	}
	if len(raw) < 5 {
		return errors.Wrapf(ErrMalformed, "line %d: record too short", p.line)
	}

	length := raw[0]
	if int(length)+5 != len(raw) {
		return errors.Wrapf(ErrMalformed, "line %d: declared length %d, got %d data bytes", p.line, length, len(raw)-5)
	}
	offset := uint16(raw[1])<<8 | uint16(raw[2])
	recType := raw[3]
	body := raw[4 : 4+int(length)]

	if computed := checksum(raw[:len(raw)-1]); raw[len(raw)-1] != computed {
		return errors.Wrapf(ErrChecksum, "line %d: expected %02X, got %02X", p.line, computed, raw[len(raw)-1])
	}

	var readOffset int64
	keepBody := true

	switch recType {
	case TypeData:
		keepBody = false
		readOffset = int64(p.baseAddress) + int64(offset)
		if !p.sawData && !p.disableCompactOutput {
			p.outputOffset = -readOffset
		}
		p.sawData = true

		readOffset += p.outputOffset
		if _, err := p.w.WriteAt(body, readOffset); err != nil {
			return err
		}
	case TypeEOF:
		p.eof = true
	case TypeExtendedSegmentAddress:
		if length != 2 {
			return errors.Wrapf(ErrMalformed, "line %d: segment address record needs 2 bytes", p.line)
		}
		p.baseAddress = (uint32(body[0])<<8 | uint32(body[1])) << 4
	case TypeExtendedLinearAddress:
		if length != 2 {
			return errors.Wrapf(ErrMalformed, "line %d: linear address record needs 2 bytes", p.line)
		}
		p.baseAddress = (uint32(body[0])<<8 | uint32(body[1])) << 16
	case TypeStartSegmentAddress, TypeStartLinearAddress:
	default:
		return errors.Wrapf(ErrMalformed, "line %d: unknown record type %d", p.line, recType)
	}

	rec := Record{
		Length:     length,
		Offset:     offset,
		RecType:    recType,
		ReadOffset: readOffset,
	}
	if keepBody {
		rec.Body = append([]byte(nil), body...)
	}
	p.Records = append(p.Records, rec)

	return nil
}

// nextLine returns the next non-empty line without its line ending.
func (p *Parser) nextLine() (string, error) {
	for {
		line, err := p.r.ReadString('\n')
		p.line++
		text := strings.TrimSpace(line)
		if text != "" {
			return text, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (p *Parser) HasNext() bool {
	return !p.eof
}

// ParseAll reads records until the end of file record.
func (p *Parser) ParseAll() error {
	for p.HasNext() {
		if err := p.ReadRecord(); err != nil {
			return err
		}
	}
	return nil
}

// checksum is the two's complement of the byte sum.
func checksum(p []byte) uint8 {
	var sum uint8
	for _, b := range p {
		sum += b
	}
	return ^sum + 1
}
