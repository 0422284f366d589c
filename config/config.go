// Package config loads the process configuration of the joltage commands.
//
// Priority: environment (JOLTAGE_*) > YAML file > defaults. The merged
// result is checked with go-playground/validator tags before use.
//
// Example file:
//
//	solver:
//	  eps: 1e-9
//	  bound: per-button
//	  max_nodes: 5000000
//	  time_limit: 30s
//	batch:
//	  workers: 8
//	  mode: joltage
//	logging:
//	  level: info
//	  format: json
//	input:
//	  format: text
//	telemetry:
//	  trace: stdout
//	  metrics: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/joltage/batch"
	"github.com/katalvlaran/joltage/logging"
	"github.com/katalvlaran/joltage/matrix"
	"github.com/katalvlaran/joltage/solver"
	"github.com/katalvlaran/joltage/telemetry"
)

// ErrInvalidConfig wraps every load, parse and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// envPrefix prefixes every environment override.
const envPrefix = "JOLTAGE_"

// validate is the shared validator instance; it caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the full process configuration.
//
// Thread Safety: safe to read concurrently; not safe to modify after Load.
type Config struct {
	Solver    SolverConfig    `yaml:"solver"`
	Batch     BatchConfig     `yaml:"batch"`
	Logging   LoggingConfig   `yaml:"logging"`
	Input     InputConfig     `yaml:"input"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SolverConfig mirrors solver.Options.
type SolverConfig struct {
	Eps       float64       `yaml:"eps" validate:"gte=0,lte=0.001"`
	Bound     string        `yaml:"bound" validate:"oneof=global per-button"`
	MaxNodes  int           `yaml:"max_nodes" validate:"gte=0"`
	TimeLimit time.Duration `yaml:"time_limit" validate:"gte=0"`
}

// BatchConfig mirrors batch.Config.
type BatchConfig struct {
	Workers int    `yaml:"workers" validate:"gte=0,lte=4096"`
	Mode    string `yaml:"mode" validate:"oneof=joltage indicator"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// InputConfig selects the machine file format.
type InputConfig struct {
	Format string `yaml:"format" validate:"oneof=text json"`
}

// TelemetryConfig mirrors telemetry.Config.
//
// Trace   - span exporter: none or stdout (JSON lines on the error stream).
// Metrics - write the Prometheus metrics after every run.
type TelemetryConfig struct {
	Trace   string `yaml:"trace" validate:"oneof=none stdout"`
	Metrics bool   `yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver:    SolverConfig{Eps: matrix.DefaultTolerance, Bound: solver.GlobalBound.String()},
		Batch:     BatchConfig{Mode: batch.ModeJoltage.String()},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Input:     InputConfig{Format: "text"},
		Telemetry: TelemetryConfig{Trace: telemetry.TraceNone},
	}
}

// Load merges defaults, the YAML file at path (skipped when path is empty)
// and the process environment, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err = cfg.decode(bytes.NewReader(data)); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Parse is Load without the file system and the environment: it overlays
// the YAML document in r onto the defaults and validates.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// decode overlays a YAML document; unknown keys are rejected.
func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: yaml: %w", ErrInvalidConfig, err)
	}

	return nil
}

// applyEnv overrides fields from JOLTAGE_* variables found by lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var err error
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" || err != nil {
			return
		}
		var n int
		if n, err = strconv.Atoi(v); err != nil {
			err = fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, envPrefix, name, err)
			return
		}
		*dst = n
	}

	str("BOUND", &c.Solver.Bound)
	str("MODE", &c.Batch.Mode)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)
	str("INPUT_FORMAT", &c.Input.Format)
	str("TRACE", &c.Telemetry.Trace)
	num("MAX_NODES", &c.Solver.MaxNodes)
	num("WORKERS", &c.Batch.Workers)
	if err != nil {
		return err
	}

	if v, ok := lookup(envPrefix + "EPS"); ok && v != "" {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			return fmt.Errorf("%w: %sEPS: %w", ErrInvalidConfig, envPrefix, perr)
		}
		c.Solver.Eps = f
	}
	if v, ok := lookup(envPrefix + "METRICS"); ok && v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return fmt.Errorf("%w: %sMETRICS: %w", ErrInvalidConfig, envPrefix, perr)
		}
		c.Telemetry.Metrics = b
	}
	if v, ok := lookup(envPrefix + "TIME_LIMIT"); ok && v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return fmt.Errorf("%w: %sTIME_LIMIT: %w", ErrInvalidConfig, envPrefix, perr)
		}
		c.Solver.TimeLimit = d
	}

	return nil
}

// Validate checks every field against its validate tag.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// SolverOptions converts the solver section.
func (c Config) SolverOptions() (solver.Options, error) {
	bound, err := solver.ParseBoundPolicy(c.Solver.Bound)
	if err != nil {
		return solver.Options{}, fmt.Errorf("%w: bound %q", ErrInvalidConfig, c.Solver.Bound)
	}

	return solver.NewOptions(
		solver.WithEps(c.Solver.Eps),
		solver.WithBound(bound),
		solver.WithMaxNodes(c.Solver.MaxNodes),
		solver.WithTimeLimit(c.Solver.TimeLimit),
	), nil
}

// BatchOptions converts the batch and solver sections; logger, metrics and
// tracer are left for the caller.
func (c Config) BatchOptions() (batch.Config, error) {
	opts, err := c.SolverOptions()
	if err != nil {
		return batch.Config{}, err
	}
	mode, err := batch.ParseMode(c.Batch.Mode)
	if err != nil {
		return batch.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return batch.Config{Mode: mode, Workers: c.Batch.Workers, Solver: opts}, nil
}

// LoggerConfig converts the logging section, writing to out.
func (c Config) LoggerConfig(out io.Writer) (logging.Config, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return logging.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return logging.Config{Level: level, Format: format, Output: out, Service: "joltage"}, nil
}

// TelemetryOptions converts the telemetry section; spans go to out.
func (c Config) TelemetryOptions(service string, out io.Writer) telemetry.Config {
	return telemetry.Config{Service: service, TraceExporter: c.Telemetry.Trace, TraceOutput: out}
}
