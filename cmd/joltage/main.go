// Command joltage reads machines and prints the fewest button presses
// needed across the batch.
//
// Usage:
//
//	joltage solve  [file|-]   # counters to their targets
//	joltage lights [file|-]   # lights to their pattern
//	joltage check  [file|-]   # parse and validate only
//
// Input is one machine per line in the text format
// ("[.##.] (3) (1,3) (2) {3,5,4,7}") or the JSON format with --format json.
// SIGINT and SIGTERM cancel a run in progress.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Interrupts cancel the running batch; the searches poll the context.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "joltage:", err)
		os.Exit(1)
	}
}
