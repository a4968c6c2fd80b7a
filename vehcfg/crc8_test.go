package vehcfg

import (
	"testing"

	"github.com/snksoft/crc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smbus is CRC-8/SMBUS: the same polynomial without the pre-shift.
var smbus = &crc.Parameters{
	Width:      8,
	Polynomial: 0x07,
	ReflectIn:  false,
	ReflectOut: false,
	Init:       0x00,
	FinalXor:   0x00,
}

func TestCRC8(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint8
	}{
		{name: "empty data", data: []byte{}, expected: 0x00},
		{name: "nil data", data: nil, expected: 0x00},
		{name: "single zero", data: []byte{0x00}, expected: 0x00},
		{name: "single one", data: []byte{0x01}, expected: 0x07},
		{name: "check string", data: []byte("123456789"), expected: 0xF4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CRC8(tt.data), "CRC8(%x)", tt.data)
		})
	}
}

func TestCRC8MatchesReference(t *testing.T) {
	inputs := [][]byte{
		{0x01, 0x01, 0x00},
		{0xFF},
		{0xFF, 0xFF, 0xFF, 0xFF},
		[]byte("vehicle config"),
	}
	long := make([]byte, 512)
	for i := range long {
		long[i] = byte(i * 31)
	}
	inputs = append(inputs, long)

	for _, in := range inputs {
		want := uint8(crc.CalculateCRC(smbus, in))
		assert.Equal(t, want, CRC8(in), "CRC8(%x)", in)
	}
}

func TestCRC8Consistency(t *testing.T) {
	data := []byte{0x10, 0x20, 0x30, 0x40, 0x50}
	first := CRC8(data)
	assert.Equal(t, first, CRC8(data))

	// Any single-byte change must be detected.
	for i := range data {
		changed := append([]byte(nil), data...)
		changed[i] ^= 0x01
		assert.NotEqual(t, first, CRC8(changed), "flip in byte %d", i)
	}
}

func TestSealAndVerify(t *testing.T) {
	blob := []byte{0x01, 0x01, 0x00, 0x00}
	ok, _, _ := Verify(blob)
	assert.False(t, ok)

	Seal(blob)
	assert.Equal(t, CRC8([]byte{0x01, 0x01, 0x00}), blob[3])

	ok, stored, computed := Verify(blob)
	require.True(t, ok)
	assert.Equal(t, stored, computed)

	ok, _, _ = Verify(nil)
	assert.False(t, ok)
	Seal(nil)
}
