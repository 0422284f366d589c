package solver_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/solver"
)

func ExampleSolve() {
	m, err := machine.Parse("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := solver.Solve(context.Background(), m, solver.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("presses:", res.Total, "free variables:", res.FreeVariables)
	// Output:
	// presses: 10 free variables: 2
}

func ExampleSearch_infeasible() {
	m := machine.Machine{Buttons: [][]int{{0, 1}}, Targets: []int{1, 2}}
	red, _ := solver.Eliminate(m, solver.DefaultOptions().Eps)
	_, err := solver.Search(context.Background(), red, m.Targets, solver.DefaultOptions())
	fmt.Println(err)
	// Output:
	// solver: no feasible solution
}
