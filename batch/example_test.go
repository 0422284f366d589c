package batch_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/joltage/batch"
	"github.com/katalvlaran/joltage/logging"
	"github.com/katalvlaran/joltage/machine"
)

func ExampleSolveAll() {
	ms, _ := machine.ParseAll(strings.NewReader(`
[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}
[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}
`))
	quiet := batch.WithLogger(logging.Nop())

	joltage, _ := batch.SolveAll(context.Background(), ms, quiet)
	lights, _ := batch.SolveAll(context.Background(), ms, quiet, batch.WithMode(batch.ModeIndicator))
	fmt.Println(joltage, lights)
	// Output:
	// 33 7
}
