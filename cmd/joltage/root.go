package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/joltage/batch"
	"github.com/katalvlaran/joltage/config"
	"github.com/katalvlaran/joltage/logging"
	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/telemetry"
)

// cli holds the streams and flag values of one command tree.
type cli struct {
	in       io.Reader
	out, err io.Writer

	configPath string
	format     string
	workers    int
	maxNodes   int
	timeLimit  time.Duration
	bound      string
	logLevel   string
	logFormat  string
	trace      string
	metrics    bool
	verbose    bool
}

// newRootCmd builds the command tree bound to the given streams.
func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, err: errOut}

	root := &cobra.Command{
		Use:   "joltage",
		Short: "Fewest button presses to configure a batch of machines",
		Long: `Each machine has counters with target values and buttons that add one to
a fixed set of counters per press. joltage finds, per machine, the fewest
presses that land every counter exactly on its target and prints the sum.

Examples:
  joltage solve input.txt
  joltage solve --workers 8 --bound per-button - < input.txt
  joltage lights input.txt
  joltage solve --trace stdout --metrics input.txt 2> telemetry.log
  joltage check --format json machines.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file (env JOLTAGE_* overrides it)")
	pf.StringVar(&c.format, "format", "", "input format: text or json")
	pf.IntVar(&c.workers, "workers", 0, "machines solved concurrently (0 = GOMAXPROCS)")
	pf.IntVar(&c.maxNodes, "max-nodes", 0, "search node cap per machine (0 = unlimited)")
	pf.DurationVar(&c.timeLimit, "time-limit", 0, "search time cap per machine (0 = none)")
	pf.StringVar(&c.bound, "bound", "", "free variable bound: global or per-button")
	pf.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&c.logFormat, "log-format", "", "text or json")
	pf.StringVar(&c.trace, "trace", "", "span exporter: none or stdout (written to stderr)")
	pf.BoolVar(&c.metrics, "metrics", false, "write Prometheus metrics to stderr after the run")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "print one line per machine")

	root.AddCommand(
		c.newSolveCmd(batch.ModeJoltage, "solve", "Fewest presses to reach every counter target"),
		c.newSolveCmd(batch.ModeIndicator, "lights", "Fewest presses to reach every light pattern"),
		c.newCheckCmd(),
	)

	return root
}

// settings loads the config file and environment, then applies the flags
// the user actually set on cmd.
func (c *cli) settings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Input.Format = c.format
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = c.workers
	}
	if flags.Changed("max-nodes") {
		cfg.Solver.MaxNodes = c.maxNodes
	}
	if flags.Changed("time-limit") {
		cfg.Solver.TimeLimit = c.timeLimit
	}
	if flags.Changed("bound") {
		cfg.Solver.Bound = c.bound
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = c.logFormat
	}
	if flags.Changed("trace") {
		cfg.Telemetry.Trace = c.trace
	}
	if flags.Changed("metrics") {
		cfg.Telemetry.Metrics = c.metrics
	}

	return cfg, cfg.Validate()
}

// logger builds the run logger; records go to the error stream.
func (c *cli) logger(cfg config.Config) (*slog.Logger, error) {
	lc, err := cfg.LoggerConfig(c.err)
	if err != nil {
		return nil, err
	}

	return logging.New(lc), nil
}

// finishTelemetry flushes the spans of tel and, when enabled, writes the
// metrics to the error stream.
func (c *cli) finishTelemetry(cfg config.Config, tel *telemetry.Telemetry) error {
	if err := tel.Shutdown(context.Background()); err != nil {
		return err
	}
	if cfg.Telemetry.Metrics {
		return tel.WriteMetrics(c.err)
	}

	return nil
}

// readMachines reads args[0] (or stdin for "-" or no argument) in the
// configured format.
func (c *cli) readMachines(cfg config.Config, args []string) ([]machine.Machine, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(c.in)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if cfg.Input.Format == "json" {
		return machine.ParseJSON(data)
	}

	return machine.ParseAll(bytes.NewReader(data))
}
