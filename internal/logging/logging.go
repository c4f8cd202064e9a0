// Package logging builds the zerolog loggers used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Builder assembles a logger over a writer.
type Builder struct {
	writer io.Writer
	level  zerolog.Level
	format Format
}

// New returns a builder writing console output to stderr at info level.
func New() *Builder {
	return &Builder{writer: os.Stderr, level: zerolog.InfoLevel, format: FormatConsole}
}

// FromWriter sets the output writer.
func (b *Builder) FromWriter(w io.Writer) *Builder {
	if w != nil {
		b.writer = w
	}
	return b
}

// WithLevel sets the minimum level.
func (b *Builder) WithLevel(level zerolog.Level) *Builder {
	b.level = level
	return b
}

// WithFormat sets the encoding.
func (b *Builder) WithFormat(format Format) *Builder {
	b.format = format
	return b
}

// Make builds the logger.
func (b *Builder) Make() zerolog.Logger {
	writer := b.writer
	if b.format == FormatConsole {
		writer = zerolog.ConsoleWriter{Out: b.writer, TimeFormat: time.Kitchen, NoColor: !isTerminal(b.writer)}
	}
	return zerolog.New(writer).Level(b.level).With().Timestamp().Logger()
}

// ParseLevel accepts zerolog level names. Empty means info.
func ParseLevel(raw string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: invalid level %q", raw)
	}
	return level, nil
}

// ParseFormat accepts "console" or "json". Empty means console.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatConsole:
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("logging: invalid format %q", raw)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
