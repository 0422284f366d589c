package indicator

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/joltage/machine"
)

// step records how a mask was first reached.
type step struct {
	parent uint64
	button int // -1 for the root
}

// walker encapsulates mutable BFS state.
type walker struct {
	ctx     context.Context
	buttons []uint64
	target  uint64
	queue   []uint64
	visited map[uint64]step
	polls   int
}

// Masks encodes the pattern and the buttons of m as bitmasks.
func Masks(m machine.Machine) (target uint64, buttons []uint64, err error) {
	if len(m.Lights) > MaxLights {
		return 0, nil, fmt.Errorf("%w: %d", ErrTooManyLights, len(m.Lights))
	}
	for i, on := range m.Lights {
		if on {
			target |= 1 << uint(i)
		}
	}
	buttons = make([]uint64, len(m.Buttons))
	for b, button := range m.Buttons {
		for _, c := range button {
			if c >= MaxLights {
				return 0, nil, fmt.Errorf("%w: button %d toggles light %d", ErrTooManyLights, b, c)
			}
			buttons[b] |= 1 << uint(c)
		}
	}

	return target, buttons, nil
}

// Solve runs the breadth-first search for m.
// A machine without a lights block asks for the all-off pattern.
func Solve(ctx context.Context, m machine.Machine) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	target, buttons, err := Masks(m)
	if err != nil {
		return Result{}, err
	}

	w := &walker{
		ctx:     ctx,
		buttons: buttons,
		target:  target,
		queue:   make([]uint64, 0, len(buttons)+1),
		visited: map[uint64]step{0: {button: -1}},
	}
	w.queue = append(w.queue, 0)

	found, err := w.loop()
	res := Result{States: len(w.visited)}
	if err != nil {
		return res, err
	}
	if !found {
		return res, ErrUnreachable
	}
	res.Buttons = w.path()
	res.Presses = len(res.Buttons)

	return res, nil
}

// MinPresses returns only the press count of Solve.
func MinPresses(m machine.Machine) (int, error) {
	res, err := Solve(context.Background(), m)
	if err != nil {
		return 0, err
	}

	return res.Presses, nil
}

// loop processes the queue until the target is dequeued, the queue empties,
// or the context is cancelled.
func (w *walker) loop() (bool, error) {
	for len(w.queue) > 0 {
		w.polls++
		if w.polls&cancelCheckMask == 0 {
			if err := w.ctx.Err(); err != nil {
				return false, err
			}
		}

		mask := w.queue[0]
		w.queue = w.queue[1:]
		if mask == w.target {
			return true, nil
		}
		for b, bm := range w.buttons {
			next := mask ^ bm
			if _, seen := w.visited[next]; seen {
				continue
			}
			w.visited[next] = step{parent: mask, button: b}
			w.queue = append(w.queue, next)
		}
	}

	return false, nil
}

// path walks parent links back from the target to the all-off mask.
func (w *walker) path() []int {
	out := make([]int, 0)
	for cur := w.target; ; {
		s := w.visited[cur]
		if s.button < 0 {
			break
		}
		out = append(out, s.button)
		cur = s.parent
	}
	slices.Sort(out)

	return out
}
