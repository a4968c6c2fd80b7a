package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

const (
	// LevelEnv overrides the default log level when no flag is given.
	LevelEnv = "VCE_LOG_LEVEL"

	// JSONEnv switches output to JSON when set to "1".
	JSONEnv = "VCE_JSON_LOG"

	defaultLevel = "info"
)

// New creates a logger writing to output, or stderr when output is nil.
func New(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(JSONEnv) == "1",
		Output:     output,
		TimeFormat: "15:04:05.000000",
	})
}

// Level resolves the log level: the flag value if set, then the environment,
// then info.
func Level(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(LevelEnv); env != "" {
		return env
	}
	return defaultLevel
}
