package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/joltage/batch"
	"github.com/katalvlaran/joltage/telemetry"
)

// newSolveCmd builds "solve" or "lights": both run the batch and print its total.
func (c *cli) newSolveCmd(mode batch.Mode, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file|-]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			log, err := c.logger(cfg)
			if err != nil {
				return err
			}
			machines, err := c.readMachines(cfg, args)
			if err != nil {
				return err
			}
			bc, err := cfg.BatchOptions()
			if err != nil {
				return err
			}
			tel, err := telemetry.Init(cfg.TelemetryOptions("joltage", c.err))
			if err != nil {
				return err
			}
			bc.Mode = mode
			bc.Logger = log
			bc.Metrics = tel.Metrics
			bc.Tracer = tel.Tracer()

			rep, err := batch.Run(cmd.Context(), machines, bc)
			if terr := c.finishTelemetry(cfg, tel); err == nil {
				err = terr
			}
			if err != nil {
				return err
			}
			if c.verbose {
				for _, r := range rep.Results {
					fmt.Fprintf(c.out, "machine %d: %d presses %v\n", r.Index, r.Total, r.Presses)
				}
			}
			fmt.Fprintln(c.out, rep.Total)

			return nil
		},
	}
}

// newCheckCmd builds "check": parse and validate without solving.
func (c *cli) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|-]",
		Short: "Parse and validate machines without solving them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			machines, err := c.readMachines(cfg, args)
			if err != nil {
				return err
			}
			buttons, counters := 0, 0
			for _, m := range machines {
				buttons += len(m.Buttons)
				counters += m.Counters()
			}
			fmt.Fprintf(c.out, "%d machines ok (%d buttons, %d counters)\n", len(machines), buttons, counters)

			return nil
		},
	}
}
