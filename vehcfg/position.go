package vehcfg

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// MaxBit is the highest bit index inside a byte. Bit 0 is the least significant.
const MaxBit = 7

var positionRe = regexp.MustCompile(`^\[(\d+)\]\[(\d+):(\d+)\]$`)

// Position locates a field inside a single byte of a config blob.
// The zero value addresses bit 0 of byte 0.
type Position struct {
	byteIdx int
	highBit uint8
	lowBit  uint8
}

// ParsePosition parses a descriptor of the form "[byteIndex][highBit:lowBit]".
func ParsePosition(s string) (Position, error) {
	m := positionRe.FindStringSubmatch(s)
	if m == nil {
		return Position{}, errors.Wrapf(ErrFormat, "position %q should look like [byte][high:low]", s)
	}

	byteIdx, err := strconv.Atoi(m[1])
	if err != nil {
		return Position{}, errors.Wrapf(ErrFormat, "position %q: byte index %s", s, m[1])
	}

	high, err := parseBit(m[2])
	if err != nil {
		return Position{}, errors.Wrapf(ErrRange, "position %q: high bit %s should be in range [0...%d]", s, m[2], MaxBit)
	}

	low, err := parseBit(m[3])
	if err != nil {
		return Position{}, errors.Wrapf(ErrRange, "position %q: low bit %s should be in range [0...%d]", s, m[3], MaxBit)
	}

	if low > high {
		return Position{}, errors.Wrapf(ErrRange, "position %q: low bit %d should not exceed high bit %d", s, low, high)
	}

	return Position{byteIdx: byteIdx, highBit: high, lowBit: low}, nil
}

func parseBit(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if v > MaxBit {
		return 0, strconv.ErrRange
	}
	return uint8(v), nil
}

// ByteIndex is the offset of the byte holding the field.
func (p Position) ByteIndex() int { return p.byteIdx }

// HighBit is the most significant bit of the field.
func (p Position) HighBit() uint8 { return p.highBit }

// LowBit is the least significant bit of the field.
func (p Position) LowBit() uint8 { return p.lowBit }

// Width is the number of bits covered by the position.
func (p Position) Width() int {
	return int(p.highBit-p.lowBit) + 1
}

// mask has ones over [lowBit, highBit].
func (p Position) mask() byte {
	return byte((1<<p.Width())-1) << p.lowBit
}

func (p Position) String() string {
	return fmt.Sprintf("[%d][%d:%d]", p.byteIdx, p.highBit, p.lowBit)
}
