package indicator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/indicator"
	"github.com/katalvlaran/joltage/machine"
)

var samples = []struct {
	line string
	want int
}{
	{"[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}", 2},
	{"[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}", 3},
	{"[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}", 2},
}

func mustParse(t *testing.T, line string) machine.Machine {
	t.Helper()
	m, err := machine.Parse(line)
	require.NoError(t, err)

	return m
}

// TestSamples checks the press counts (sum 7) and that the pressed buttons
// XOR to the pattern.
func TestSamples(t *testing.T) {
	total := 0
	for _, tc := range samples {
		m := mustParse(t, tc.line)
		res, err := indicator.Solve(context.Background(), m)
		require.NoError(t, err, tc.line)
		require.Equal(t, tc.want, res.Presses, tc.line)
		require.Len(t, res.Buttons, res.Presses)

		target, masks, err := indicator.Masks(m)
		require.NoError(t, err)
		var got uint64
		for _, b := range res.Buttons {
			got ^= masks[b]
		}
		require.Equal(t, target, got)
		total += res.Presses
	}
	require.Equal(t, 7, total)
}

// TestFirstFound: the first two-press answer in button order is (1,3)+(2,3).
func TestFirstFound(t *testing.T) {
	res, err := indicator.Solve(context.Background(), mustParse(t, samples[0].line))
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, res.Buttons)
}

func TestAllOff(t *testing.T) {
	n, err := indicator.MinPresses(mustParse(t, "[...] (0,1) (2) {1,1,1}"))
	require.NoError(t, err)
	require.Zero(t, n)

	// no lights block at all
	n, err = indicator.MinPresses(mustParse(t, "(0) {4}"))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestUnreachable(t *testing.T) {
	res, err := indicator.Solve(context.Background(), mustParse(t, "[#.] (0,1) {0,0}"))
	require.ErrorIs(t, err, indicator.ErrUnreachable)
	require.Equal(t, 2, res.States)
}

func TestTooManyLights(t *testing.T) {
	line := "[" + strings.Repeat(".", 64) + "#] (64) {" + strings.TrimSuffix(strings.Repeat("0,", 65), ",") + "}"
	_, err := indicator.MinPresses(mustParse(t, line))
	require.ErrorIs(t, err, indicator.ErrTooManyLights)

	line = "[" + strings.Repeat(".", 63) + "#] (63) {" + strings.TrimSuffix(strings.Repeat("0,", 64), ",") + "}"
	n, err := indicator.MinPresses(mustParse(t, line))
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMalformed(t *testing.T) {
	_, err := indicator.MinPresses(machine.Machine{Lights: []bool{true}, Buttons: [][]int{{1}}, Targets: []int{0}})
	require.ErrorIs(t, err, machine.ErrMalformedMachine)
}

func TestCancelled(t *testing.T) {
	// 12 independent buttons over 12 lights: 4096 masks, pattern is the last level.
	m := machine.Machine{Lights: make([]bool, 12), Targets: make([]int, 12)}
	for i := range m.Lights {
		m.Lights[i] = true
		m.Buttons = append(m.Buttons, []int{i})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := indicator.Solve(ctx, m)
	require.ErrorIs(t, err, context.Canceled)

	res, err := indicator.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, 12, res.Presses)
}

// TestRepeatedLight: a button listing a light twice toggles it once.
func TestRepeatedLight(t *testing.T) {
	m := machine.Machine{Lights: []bool{true, false}, Buttons: [][]int{{0, 0}, {1}}, Targets: []int{0, 0}}
	_, masks, err := indicator.Masks(m)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, masks)

	n, err := indicator.MinPresses(m)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
