// Package solver - bounded search (branch-and-bound over the free variables).
//
// Search enumerates assignments to the free variables of a Reduction in a
// fixed order and keeps the assignment whose oracle total is smallest.
//
// Rationale (succinct):
//  1. Depth-first over free-variable index 0..len(Independents); at each
//     level the values 0, 1, 2, … are tried in increasing order.
//  2. Per-level upper bound (exclusive): max(targets)+1 under GlobalBound,
//     or the button's smallest counter target +1 under PerButtonBound.
//  3. Branch-and-bound cut: once sum(assigned)+value ≥ best, larger values at
//     this level cannot win either (values only grow), so the level stops.
//  4. Leaf: the validity oracle computes the dependents; a strictly smaller
//     total replaces the incumbent, so ties keep the first found.
//  5. Soft budget: node cap checked on every node, clock and context checked
//     every 4096 nodes.
//
// Complexity:
//   - Worst case exponential in the number of free variables; per leaf
//     O(dependents·free) for the oracle.
//   - Memory: O(free) for the assignment plus O(buttons) for the incumbent.

package solver

import (
	"context"
	"fmt"
	"time"
)

// searchEngine holds all search data and policies for one machine.
// The Reduction is shared read-only; every other field is owned by the engine.
type searchEngine struct {
	red Reduction
	eps float64

	// Per-level exclusive upper bound on the free variable's value.
	limit []int

	// Budget
	ctx         context.Context
	maxNodes    int
	useDeadline bool
	deadline    time.Time
	stop        error

	// Current search state: values[0:depth] are assigned.
	values []int

	// Incumbent
	best        int
	bestPresses []int
	onIncumbent func(int)

	// Counters
	nodes       int
	oracleCalls int
}

// exhausted counts a node and reports whether the budget ran out.
func (e *searchEngine) exhausted() bool {
	e.nodes++
	if e.maxNodes > 0 && e.nodes > e.maxNodes {
		e.stop = fmt.Errorf("%w: more than %d nodes", ErrBudgetExceeded, e.maxNodes)
		return true
	}
	if e.nodes&deadlineMask != 0 {
		return false
	}
	if err := e.ctx.Err(); err != nil {
		e.stop = err
		return true
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		e.stop = fmt.Errorf("%w: time limit reached after %d nodes", ErrBudgetExceeded, e.nodes)
		return true
	}

	return false
}

// buildLimits computes the exclusive per-level bound.
func (e *searchEngine) buildLimits(targets []int, policy BoundPolicy) {
	global := 0
	for _, t := range targets {
		global = max(global, t)
	}
	global++ // 0..max(targets) inclusive

	e.limit = make([]int, len(e.red.Independents))
	for j, col := range e.red.Independents {
		e.limit[j] = global
		if policy == PerButtonBound && e.red.caps != nil {
			e.limit[j] = min(global, e.red.caps[col]+1)
		}
	}
}

// commit evaluates the full assignment and records a strictly better incumbent.
func (e *searchEngine) commit() {
	e.oracleCalls++
	total, ok := e.red.Evaluate(e.values, e.eps)
	if !ok || total >= e.best {
		return
	}
	presses, _, _ := e.red.EvaluatePresses(e.values, e.eps)
	e.best = total
	e.bestPresses = presses
	if e.onIncumbent != nil {
		e.onIncumbent(total)
	}
}

// dfs assigns free variable idx given the sum of values[0:idx].
// values[idx] is reset to 0 before returning (undo discipline).
func (e *searchEngine) dfs(idx, sum int) {
	if e.exhausted() {
		return
	}
	if idx == len(e.values) {
		e.commit()
		return
	}
	for v := 0; v < e.limit[idx]; v++ {
		// Free presses alone already match the incumbent.
		if sum+v >= e.best {
			break
		}
		e.values[idx] = v
		e.dfs(idx+1, sum+v)
		if e.stop != nil {
			break
		}
	}
	e.values[idx] = 0
}

// Search runs the bounded branch-and-bound search over red's free variables.
//
// targets are the machine's counter targets (they define the GlobalBound).
// On success the Result holds the minimum total and its press vector.
//
// Errors:
//   - ErrInfeasible if the system is inconsistent or no explored assignment is valid.
//   - ErrBudgetExceeded (wrapped) on MaxNodes/TimeLimit; ctx.Err() on cancellation.
//     The Result then carries the counters and any incumbent found so far.
//   - ErrInvalidOptions for out-of-range options.
func Search(ctx context.Context, red Reduction, targets []int, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	res := Result{FreeVariables: len(red.Independents)}
	if !red.Consistent {
		return res, ErrInfeasible
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	e := searchEngine{
		red:         red,
		eps:         opts.Eps,
		ctx:         ctx,
		maxNodes:    opts.MaxNodes,
		values:      make([]int, len(red.Independents)),
		best:        infeasible,
		onIncumbent: opts.OnIncumbent,
	}
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}
	e.buildLimits(targets, opts.Bound)

	e.dfs(0, 0)

	res.Nodes, res.OracleCalls = e.nodes, e.oracleCalls
	if e.best != infeasible {
		res.Total, res.Presses = e.best, e.bestPresses
	}
	if e.stop != nil {
		return res, e.stop
	}
	if e.best == infeasible {
		return res, ErrInfeasible
	}

	return res, nil
}
