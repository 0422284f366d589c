package solver

import (
	"context"

	"github.com/katalvlaran/joltage/machine"
)

// Solve computes the minimum number of presses for one machine:
// validate → build the augmented system → eliminate → bounded search.
//
// Errors:
//   - machine.ErrMalformedMachine (wrapped) before any numeric work.
//   - ErrInvalidOptions, ErrInfeasible, ErrBudgetExceeded, ctx.Err() from Search.
func Solve(ctx context.Context, m machine.Machine, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	red, err := Eliminate(m, opts.Eps)
	if err != nil {
		return Result{}, err
	}

	return Search(ctx, red, m.Targets, opts)
}
