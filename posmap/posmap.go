// Package posmap loads position maps: the description of a config blob's size,
// its allowed project codes and the location of every named property.
//
// The canonical format is JSON:
//
//	{
//	  "size": 64,
//	  "project_code": [1, 3],
//	  "ro.vehicle.config": {"AAA": "[0][7:0]", "X": "[1][0:0]"}
//	}
//
// The same document is accepted as TOML or CBOR, picked by file extension.
package posmap

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

// TableKey is the document key holding the position table.
const TableKey = "ro.vehicle.config"

type Format int

const (
	JSON Format = iota
	TOML
	CBOR
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case TOML:
		return "toml"
	case CBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file extension. Anything unrecognised is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".cbor":
		return CBOR
	default:
		return JSON
	}
}

type document struct {
	Size        *int              `json:"size" toml:"size" cbor:"size"`
	ProjectCode any               `json:"project_code" toml:"project_code" cbor:"project_code"`
	Table       map[string]string `json:"ro.vehicle.config" toml:"ro.vehicle.config" cbor:"ro.vehicle.config"`
}

// Load reads and decodes the map at path.
func Load(path string) (vehcfg.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vehcfg.Map{}, errors.Wrapf(err, "map load failed (%s)", path)
	}
	m, err := Decode(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return vehcfg.Map{}, errors.Wrapf(err, "map parse failed (%s)", path)
	}
	return m, nil
}

// Decode reads a single map document from r.
func Decode(r io.Reader, format Format) (vehcfg.Map, error) {
	var doc document
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return vehcfg.Map{}, err
		}
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return vehcfg.Map{}, err
		}
	case CBOR:
		if err := cbor.NewDecoder(r).Decode(&doc); err != nil {
			return vehcfg.Map{}, err
		}
	default:
		return vehcfg.Map{}, errors.Errorf("unsupported map format %d", format)
	}
	return doc.toMap()
}

func (d document) toMap() (vehcfg.Map, error) {
	if d.Size == nil {
		return vehcfg.Map{}, errors.Wrap(vehcfg.ErrFormat, "missing size")
	}
	if *d.Size < 0 {
		return vehcfg.Map{}, errors.Wrapf(vehcfg.ErrFormat, "negative size %d", *d.Size)
	}
	if d.Table == nil {
		return vehcfg.Map{}, errors.Wrapf(vehcfg.ErrFormat, "missing %q table", TableKey)
	}

	codes, err := projectCodes(d.ProjectCode)
	if err != nil {
		return vehcfg.Map{}, err
	}

	return vehcfg.Map{
		Metadata: vehcfg.Metadata{
			Size:         *d.Size,
			ProjectCodes: vehcfg.NewProjectCodes(codes...),
		},
		Table: vehcfg.PositionTable(d.Table),
	}, nil
}

// projectCodes accepts a single integer or a list of integers.
func projectCodes(v any) ([]uint8, error) {
	switch x := v.(type) {
	case nil:
		return nil, errors.Wrap(vehcfg.ErrFormat, "missing project_code")
	case []any:
		codes := make([]uint8, 0, len(x))
		for _, item := range x {
			c, err := projectCode(item)
			if err != nil {
				return nil, err
			}
			codes = append(codes, c)
		}
		return codes, nil
	default:
		c, err := projectCode(v)
		if err != nil {
			return nil, err
		}
		return []uint8{c}, nil
	}
}

func projectCode(v any) (uint8, error) {
	var n int64
	switch x := v.(type) {
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, errors.Wrapf(vehcfg.ErrFormat, "project code %s is not an integer", x)
		}
		n = i
	case int64:
		n = x
	case uint64:
		if x > math.MaxInt64 {
			return 0, errors.Wrapf(vehcfg.ErrOverflow, "project code %d should be in range [0...255]", x)
		}
		n = int64(x)
	case int:
		n = int64(x)
	case float64:
		if x != math.Trunc(x) {
			return 0, errors.Wrapf(vehcfg.ErrFormat, "project code %v is not an integer", x)
		}
		if x < 0 || x > math.MaxUint8 {
			return 0, errors.Wrapf(vehcfg.ErrOverflow, "project code %v should be in range [0...255]", x)
		}
		n = int64(x)
	default:
		return 0, errors.Wrapf(vehcfg.ErrFormat, "project code %v has unsupported type %T", v, v)
	}

	if n < 0 || n > math.MaxUint8 {
		return 0, errors.Wrapf(vehcfg.ErrOverflow, "project code %d should be in range [0...255]", n)
	}
	return uint8(n), nil
}
