package posmap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osamahabbal/GWM-Harman-VCE/vehcfg"
)

const sampleJSON = `{
  "size": 4,
  "project_code": 1,
  "ro.vehicle.config": {
    "AAA": "[0][7:0]",
    "X": "[1][0:0]"
  }
}`

const sampleTOML = `
size = 4
project_code = [1, 3]

["ro.vehicle.config"]
AAA = "[0][7:0]"
X = "[1][0:0]"
`

func TestDecodeJSON(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleJSON), JSON)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Size)
	assert.Equal(t, []uint8{1}, m.ProjectCodes.Codes())
	assert.Equal(t, vehcfg.PositionTable{"AAA": "[0][7:0]", "X": "[1][0:0]"}, m.Table)
}

func TestDecodeTOML(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleTOML), TOML)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Size)
	assert.Equal(t, []uint8{1, 3}, m.ProjectCodes.Codes())
	assert.Equal(t, "[1][0:0]", m.Table["X"])
}

func TestDecodeCBOR(t *testing.T) {
	data, err := cbor.Marshal(map[string]any{
		"size":         4,
		"project_code": []int{2, 5},
		TableKey:       map[string]string{"AAA": "[0][7:0]", "X": "[1][0:0]"},
	})
	require.NoError(t, err)

	m, err := Decode(strings.NewReader(string(data)), CBOR)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Size)
	assert.Equal(t, []uint8{2, 5}, m.ProjectCodes.Codes())
	assert.Equal(t, "[0][7:0]", m.Table["AAA"])
}

func TestDecodeProjectCodeList(t *testing.T) {
	in := `{"size": 2, "project_code": [7, 1, 7], "ro.vehicle.config": {}}`
	m, err := Decode(strings.NewReader(in), JSON)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 7}, m.ProjectCodes.Codes())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"missing size", `{"project_code": 1, "ro.vehicle.config": {}}`, vehcfg.ErrFormat},
		{"negative size", `{"size": -1, "project_code": 1, "ro.vehicle.config": {}}`, vehcfg.ErrFormat},
		{"missing table", `{"size": 4, "project_code": 1}`, vehcfg.ErrFormat},
		{"missing project code", `{"size": 4, "ro.vehicle.config": {}}`, vehcfg.ErrFormat},
		{"fractional code", `{"size": 4, "project_code": 1.5, "ro.vehicle.config": {}}`, vehcfg.ErrFormat},
		{"string code", `{"size": 4, "project_code": "1", "ro.vehicle.config": {}}`, vehcfg.ErrFormat},
		{"code too large", `{"size": 4, "project_code": [1, 256], "ro.vehicle.config": {}}`, vehcfg.ErrOverflow},
		{"negative code", `{"size": 4, "project_code": -3, "ro.vehicle.config": {}}`, vehcfg.ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in), JSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := Decode(strings.NewReader("{"), JSON)
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, JSON, FormatFor("map.json"))
	assert.Equal(t, JSON, FormatFor("map"))
	assert.Equal(t, TOML, FormatFor("/etc/vce/map.TOML"))
	assert.Equal(t, CBOR, FormatFor("map.cbor"))
	assert.Equal(t, "toml", TOML.String())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0644))
	m, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Size)

	tomlPath := filepath.Join(dir, "map.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(sampleTOML), 0644))
	m, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, m.ProjectCodes.Len())

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}
