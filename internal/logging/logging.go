// Package logging configures the global zerolog logger for the binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a config value to a zerolog level. An empty value means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: invalid level %q: %w", s, err)
	}
	return lvl, nil
}

// Console routes the global logger to w in human readable form.
func Console(w io.Writer, level zerolog.Level) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(level)
}

// File routes the global logger to a JSON log file, creating its directory.
// The terminal stays free for the UI. An empty path discards all output.
func File(path string, level zerolog.Level) (io.Closer, error) {
	if path == "" {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
	return f, nil
}
