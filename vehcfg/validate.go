package vehcfg

import (
	"github.com/pkg/errors"
)

// Validate checks blob against m. The first failing rule is returned:
// size, then project code, then the bounds of every mapped field.
func Validate(blob []byte, m Map) error {
	n := len(blob)
	if n == 0 || n != m.Size {
		return errors.Wrapf(ErrSize, "config size should be %d, got %d", m.Size, n)
	}

	pos, err := m.Table.Lookup(ProjectCodeProperty)
	if err != nil {
		return err
	}
	if err := checkPayload(ProjectCodeProperty, pos, n); err != nil {
		return err
	}
	code, err := ReadNumber(blob, pos)
	if err != nil {
		return propertyErr(ProjectCodeProperty, err)
	}
	if !m.ProjectCodes.Contains(code) {
		return errors.Wrapf(ErrProjectCode, "expected one of %s, got %d", m.ProjectCodes, code)
	}

	for _, name := range m.Table.Names() {
		pos, err := m.Table.Lookup(name)
		if err != nil {
			return err
		}
		if err := checkPayload(name, pos, n); err != nil {
			return err
		}
	}
	return nil
}

// checkPayload rejects positions that address the checksum byte or beyond.
func checkPayload(name string, pos Position, size int) error {
	if pos.byteIdx >= size-1 {
		return propertyErr(name, errors.Wrapf(ErrBounds, "invalid index %d, last payload byte is %d", pos.byteIdx, size-2))
	}
	return nil
}
