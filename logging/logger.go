// Package logging builds the structured log/slog loggers used by the
// joltage commands.
//
// Libraries below the batch orchestrator never log; they return errors and
// counters. Only batch and the commands write log records, always through a
// *slog.Logger built here (or slog.Default when none is configured).
//
// Example:
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON})
//	logger.Info("run finished", "total", 33)
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for an unrecognised name.
var ErrUnknownLevel = errors.New("logging: unknown level")

// ErrUnknownFormat is returned by ParseFormat for an unrecognised name.
var ErrUnknownFormat = errors.New("logging: unknown format")

// Level represents log severity, ordered Debug < Info < Warn < Error.
// The zero value is LevelInfo.
type Level int

const (
	// LevelDebug adds per-machine records (presses, nodes, free variables).
	LevelDebug Level = iota - 1

	// LevelInfo logs run start and finish.
	LevelInfo

	// LevelWarn logs conditions that did not stop the run.
	LevelWarn

	// LevelError logs the failure that aborted a run.
	LevelError
)

// String returns "debug", "info", "warn", "error" or "unknown".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// toSlogLevel bridges Level to slog.Level.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel is case-insensitive; "" and "info" both yield LevelInfo.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Format selects the slog handler.
type Format int

const (
	// FormatText is slog's key=value text handler (the default).
	FormatText Format = iota

	// FormatJSON is slog's JSON handler, one object per line.
	FormatJSON
)

// String returns "text", "json" or "unknown".
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat is case-insensitive; "" yields FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Config configures New. A zero Config logs Info+ as text to stderr.
type Config struct {
	// Level sets the minimum level; records below it are discarded.
	Level Level

	// Format selects the text or JSON handler.
	Format Format

	// Output receives the records. Default: os.Stderr.
	Output io.Writer

	// Service, when set, is attached to every record as "service".
	Service string
}

// New builds a *slog.Logger from cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	if cfg.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})
	}

	return slog.New(handler)
}

// Nop returns a logger that discards every record.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
