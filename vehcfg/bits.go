package vehcfg

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

func checkIndex(buf []byte, pos Position) error {
	if pos.byteIdx >= len(buf) {
		return errors.Wrapf(ErrBounds, "byte %d outside buffer of %d bytes", pos.byteIdx, len(buf))
	}
	return nil
}

// ReadBits returns the bits of pos as a bitstring, most significant selected bit first.
func ReadBits(buf []byte, pos Position) (string, error) {
	if err := checkIndex(buf, pos); err != nil {
		return "", err
	}

	b := buf[pos.byteIdx]
	var sb strings.Builder
	sb.Grow(pos.Width())
	for i := int(pos.highBit); i >= int(pos.lowBit); i-- {
		if b&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String(), nil
}

// ReadNumber returns the bits of pos as an unsigned integer.
func ReadNumber(buf []byte, pos Position) (uint8, error) {
	if err := checkIndex(buf, pos); err != nil {
		return 0, err
	}
	return (buf[pos.byteIdx] & pos.mask()) >> pos.lowBit, nil
}

// WriteBits stores value, a bitstring ordered high bit first, at pos.
// Bits of the byte outside pos are preserved.
func WriteBits(buf []byte, pos Position, value string) error {
	if len(value) != pos.Width() {
		return errors.Wrapf(ErrLength, "bitstring length %d is not equal to expected %d", len(value), pos.Width())
	}
	if err := checkIndex(buf, pos); err != nil {
		return err
	}

	var field byte
	for i := 0; i < len(value); i++ {
		field <<= 1
		switch value[i] {
		case '1':
			field |= 1
		case '0':
		default:
			return errors.Wrapf(ErrFormat, "bitstring %q should contain only 0 and 1", value)
		}
	}

	m := pos.mask()
	buf[pos.byteIdx] = buf[pos.byteIdx]&^m | (field<<pos.lowBit)&m
	return nil
}

// WriteNumber stores v at pos, zero-padded to the field width.
func WriteNumber(buf []byte, pos Position, v uint) error {
	n := bits.Len(v)
	if n == 0 {
		n = 1
	}
	if n > pos.Width() {
		return errors.Wrapf(ErrOverflow, "value %d needs %d bits, field %s has %d", v, n, pos, pos.Width())
	}

	digits := make([]byte, pos.Width())
	for i := range digits {
		shift := len(digits) - 1 - i
		if v>>shift&1 == 1 {
			digits[i] = '1'
		} else {
			digits[i] = '0'
		}
	}
	return WriteBits(buf, pos, string(digits))
}
