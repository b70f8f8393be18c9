// Package logging builds the zerolog logger shared by the server, the engine
// and the solver.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel overrides the configured level when set to a known value.
const EnvLogLevel = "KEKTORPATH_LOG_LEVEL"

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects the level and output format.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// New builds a logger writing to stdout. It also installs the logger as the
// package-level zerolog/log logger.
func New(app string, cfg Config) zerolog.Logger {
	logger := NewWithWriter(os.Stdout, app, cfg)
	log.Logger = logger
	return logger
}

// NewWithWriter is New with an explicit destination and without touching the
// global logger.
func NewWithWriter(w io.Writer, app string, cfg Config) zerolog.Logger {
	level, ok := ParseLevel(os.Getenv(EnvLogLevel))
	if !ok {
		level, _ = ParseLevel(cfg.Level)
	}

	out := w
	if !strings.EqualFold(cfg.Format, FormatJSON) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// report false and InfoLevel.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
