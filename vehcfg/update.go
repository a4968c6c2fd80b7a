package vehcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Update is a single named field change. When Numeric is set Value is written
// zero-padded to the field width; otherwise Bits is written as is and must match
// the field width exactly.
type Update struct {
	Name    string
	Bits    string
	Value   uint8
	Numeric bool
}

// BitsUpdate sets name to an explicit bitstring.
func BitsUpdate(name, bits string) Update {
	return Update{Name: name, Bits: bits}
}

// NumberUpdate sets name to v.
func NumberUpdate(name string, v uint8) Update {
	return Update{Name: name, Value: v, Numeric: true}
}

func (u Update) String() string {
	if u.Numeric {
		return fmt.Sprintf("%s=%d", u.Name, u.Value)
	}
	return u.Name + ":" + u.Bits
}

// ParseUpdate parses a command line token. NAME:BITSTRING sets explicit bits;
// NAME=VALUE sets a decimal or 0x-prefixed hexadecimal number in [0,255].
func ParseUpdate(token string) (Update, error) {
	i := strings.IndexAny(token, ":=")
	if i <= 0 {
		return Update{}, errors.Wrapf(ErrFormat, "argument %q should be in format PROPERTY:BITSTRING or PROPERTY=VALUE", token)
	}
	name, sep, rest := token[:i], token[i], token[i+1:]

	if sep == ':' {
		if rest == "" || strings.Trim(rest, "01") != "" {
			return Update{}, errors.Wrapf(ErrFormat, "bitstring %q should contain only 0 and 1", rest)
		}
		return BitsUpdate(name, rest), nil
	}

	v, err := parseByte(rest)
	if err != nil {
		return Update{}, err
	}
	return NumberUpdate(name, v), nil
}

func parseByte(s string) (uint8, error) {
	digits, base := s, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits, base = s[2:], 16
	}
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return 0, errors.Wrapf(ErrFormat, "value %q is not a decimal or 0x-prefixed hex number", s)
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errors.Wrapf(ErrOverflow, "value %s should be in range [0...255]", s)
		}
		return 0, errors.Wrapf(ErrFormat, "value %q is not a decimal or 0x-prefixed hex number", s)
	}
	if v > 0xFF {
		return 0, errors.Wrapf(ErrOverflow, "value %s should be in range [0...255]", s)
	}
	return uint8(v), nil
}

// ParseUpdates parses tokens in order, stopping at the first bad one.
func ParseUpdates(tokens []string) ([]Update, error) {
	updates := make([]Update, 0, len(tokens))
	for _, tok := range tokens {
		u, err := ParseUpdate(tok)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}
