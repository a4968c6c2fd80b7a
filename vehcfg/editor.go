package vehcfg

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Result is the outcome of Editor.Apply.
type Result struct {
	// Data is the edited blob. It is a copy; the input is never modified.
	Data []byte

	// Applied is the number of updates written. Zero means Data equals the input.
	Applied int

	// Touched has a bit set for every byte index an update wrote to.
	Touched *bitset.BitSet
}

// Editor applies named updates to config blobs laid out by a position table.
type Editor struct {
	table PositionTable
}

func NewEditor(table PositionTable) *Editor {
	return &Editor{table: table}
}

// Apply writes updates in order onto a copy of blob and reseals the checksum byte
// if anything was written. Updates may overlap; the later one wins.
// On error nothing is returned and blob is untouched.
func (e *Editor) Apply(blob []byte, updates []Update) (*Result, error) {
	data := make([]byte, len(blob))
	copy(data, blob)

	res := &Result{
		Data:    data,
		Touched: bitset.New(uint(len(data))),
	}

	for _, u := range updates {
		pos, err := e.apply(data, u)
		if err != nil {
			return nil, err
		}
		res.Touched.Set(uint(pos.byteIdx))
		res.Applied++
	}

	if res.Applied > 0 {
		Seal(data)
	}
	return res, nil
}

func (e *Editor) apply(data []byte, u Update) (Position, error) {
	if u.Name == ProjectCodeProperty {
		return Position{}, propertyErr(u.Name, errors.Wrap(ErrForbiddenField, "project code change is not supported"))
	}

	pos, err := e.table.Lookup(u.Name)
	if err != nil {
		return Position{}, err
	}
	if err := checkPayload(u.Name, pos, len(data)); err != nil {
		return Position{}, err
	}

	if u.Numeric {
		err = WriteNumber(data, pos, uint(u.Value))
	} else {
		err = WriteBits(data, pos, u.Bits)
	}
	if err != nil {
		return Position{}, propertyErr(u.Name, err)
	}
	return pos, nil
}
