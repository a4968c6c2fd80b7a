package vehcfg

import (
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// ProjectCodeProperty names the field holding the project code. It is read during
// validation and can never be edited.
const ProjectCodeProperty = "AAA"

// PositionTable maps property names to position descriptors.
type PositionTable map[string]string

// Lookup parses the descriptor of the named property.
func (t PositionTable) Lookup(name string) (Position, error) {
	desc, ok := t[name]
	if !ok {
		return Position{}, propertyErr(name, errors.Wrapf(ErrUnknownProperty, "%q not found in map", name))
	}
	pos, err := ParsePosition(desc)
	if err != nil {
		return Position{}, propertyErr(name, err)
	}
	return pos, nil
}

// Names returns the property names in lexical order.
func (t PositionTable) Names() []string {
	names := maps.Keys(t)
	slices.Sort(names)
	return names
}

// ProjectCodes is the allow-list of project codes. Codes occupy at most one byte.
type ProjectCodes struct {
	set *bitset.BitSet
}

// NewProjectCodes builds an allow-list from the given codes.
func NewProjectCodes(codes ...uint8) ProjectCodes {
	set := bitset.New(256)
	for _, c := range codes {
		set.Set(uint(c))
	}
	return ProjectCodes{set: set}
}

// Contains reports whether code is allowed.
func (p ProjectCodes) Contains(code uint8) bool {
	return p.set != nil && p.set.Test(uint(code))
}

// Len is the number of allowed codes.
func (p ProjectCodes) Len() int {
	if p.set == nil {
		return 0
	}
	return int(p.set.Count())
}

// Codes returns the allowed codes in ascending order.
func (p ProjectCodes) Codes() []uint8 {
	var out []uint8
	if p.set == nil {
		return out
	}
	for i, ok := p.set.NextSet(0); ok; i, ok = p.set.NextSet(i + 1) {
		out = append(out, uint8(i))
	}
	return out
}

func (p ProjectCodes) String() string {
	codes := p.Codes()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(int(c))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Metadata describes the blob as a whole.
type Metadata struct {
	Size         int
	ProjectCodes ProjectCodes
}

// Map is everything loaded from a position map file. It is built once per run
// and never mutated.
type Map struct {
	Metadata
	Table PositionTable
}
