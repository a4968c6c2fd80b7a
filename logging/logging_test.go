package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	t.Setenv(LevelEnv, "")
	assert.Equal(t, "info", Level(""))
	assert.Equal(t, "debug", Level("debug"))

	t.Setenv(LevelEnv, "warn")
	assert.Equal(t, "warn", Level(""))
	assert.Equal(t, "trace", Level("trace"))
}

func TestNewRespectsLevel(t *testing.T) {
	t.Setenv(JSONEnv, "")
	var out bytes.Buffer
	log := New("vce", "warn", &out)

	log.Info("hidden")
	assert.Empty(t, out.String())

	log.Warn("shown", "property", "X")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, out.String(), "property=X")
}

func TestNewJSON(t *testing.T) {
	t.Setenv(JSONEnv, "1")
	var out bytes.Buffer
	New("vce", "info", &out).Info("hello")
	assert.Contains(t, out.String(), `"@message":"hello"`)
}
