package vehcfg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCodeMismatchBlocksEdit(t *testing.T) {
	blob := []byte{0x00, 0x00, 0x00, 0x00}
	m := Map{
		Metadata: Metadata{Size: 4, ProjectCodes: NewProjectCodes(1)},
		Table:    PositionTable{ProjectCodeProperty: "[0][7:0]"},
	}

	err := Validate(blob, m)
	assert.True(t, errors.Is(err, ErrProjectCode), "got %v", err)
}

func TestEditSingleBit(t *testing.T) {
	blob := []byte{0x01, 0x00, 0x00, 0x00}
	m := testMap(4, 1)
	require.NoError(t, Validate(blob, m))

	updates, err := ParseUpdates([]string{"X:1"})
	require.NoError(t, err)

	res, err := NewEditor(m.Table).Apply(blob, updates)
	require.NoError(t, err)

	want := []byte{0x01, 0x01, 0x00, CRC8([]byte{0x01, 0x01, 0x00})}
	assert.Equal(t, want, res.Data)
	assert.Equal(t, 1, res.Applied)
	assert.True(t, res.Touched.Test(1))
	assert.Equal(t, uint(1), res.Touched.Count())

	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, blob, "input must not be modified")
}

func TestEditNoUpdates(t *testing.T) {
	blob := []byte{0x01, 0x00, 0x00, 0xEE}
	res, err := NewEditor(testMap(4, 1).Table).Apply(blob, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Applied)
	assert.Equal(t, blob, res.Data)
	assert.Equal(t, byte(0xEE), res.Data[3], "checksum byte must stay untouched")
}

func TestEditRejectsProjectCode(t *testing.T) {
	blob := []byte{0x01, 0x00, 0x00, 0x00}
	_, err := NewEditor(testMap(4, 1).Table).Apply(blob, []Update{NumberUpdate(ProjectCodeProperty, 2)})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbiddenField))
	var perr *PropertyError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ProjectCodeProperty, perr.Property)
}

func TestEditErrors(t *testing.T) {
	table := testMap(4, 1).Table
	table["BAD"] = "[1][9:0]"
	table["CRC"] = "[3][0:0]"

	tests := []struct {
		name    string
		update  Update
		wantErr error
	}{
		{"unknown property", BitsUpdate("NOPE", "1"), ErrUnknownProperty},
		{"empty bitstring", BitsUpdate("X", ""), ErrLength},
		{"zero value update", Update{Name: "Y"}, ErrLength},
		{"bitstring too long", BitsUpdate("X", "11"), ErrLength},
		{"number too wide", NumberUpdate("Y", 16), ErrOverflow},
		{"bad descriptor", BitsUpdate("BAD", "1"), ErrRange},
		{"checksum byte", BitsUpdate("CRC", "1"), ErrBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := []byte{0x01, 0x00, 0x00, 0x00}
			res, err := NewEditor(table).Apply(blob, []Update{NumberUpdate("Y", 3), tt.update})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, blob)
		})
	}
}

func TestEditOrderedOverlap(t *testing.T) {
	table := PositionTable{
		ProjectCodeProperty: "[0][7:0]",
		"WIDE":              "[1][7:0]",
		"LOW":               "[1][3:0]",
		"HIGH":              "[1][7:4]",
	}
	blob := []byte{0x01, 0x00, 0x00, 0x00}

	res, err := NewEditor(table).Apply(blob, []Update{
		NumberUpdate("WIDE", 0xFF),
		BitsUpdate("LOW", "0000"),
		NumberUpdate("HIGH", 0x3),
	})
	require.NoError(t, err)
	assert.Equal(t, byte(0x30), res.Data[1])
	assert.Equal(t, 3, res.Applied)
	assert.Equal(t, CRC8(res.Data[:3]), res.Data[3])

	// Reversed order: the wide write lands last and wins.
	res, err = NewEditor(table).Apply(blob, []Update{
		NumberUpdate("HIGH", 0x3),
		BitsUpdate("LOW", "0000"),
		NumberUpdate("WIDE", 0xFF),
	})
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), res.Data[1])
}
