package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_sim"
	"github.com/SeamusWaldron/gocube_sim/internal/notation"
)

var (
	solveSeed     uint64
	solveDescribe bool
	solvePlain    bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [moves...]",
	Short: "Scramble a virtual cube, then solve it",
	Long: `Scramble a cube (randomly, or with the given moves) and ask the
configured solver for a solution, which is then played back.

  gocube solve R U F2
  gocube solve --seed 7 --describe`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().Uint64Var(&solveSeed, "seed", 0, "Seed for the random shuffle (0 = random)")
	solveCmd.Flags().BoolVar(&solveDescribe, "describe", false, "Also describe the solution in plain language")
	solveCmd.Flags().BoolVar(&solvePlain, "plain", false, "Print the net as letters instead of colors")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(runtimeOptions{source: "solve", record: true, seed: seedFlag(solveSeed)})
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	e := rt.engine

	if err := applyScramble(ctx, e, args); err != nil {
		return err
	}
	fmt.Fprintf(out, "Scramble: %s\n", formatOrDash(e.History()))

	solution, err := e.Solve(ctx)
	if err != nil {
		return fmt.Errorf("solve interrupted: %w", err)
	}

	fmt.Fprintf(out, "Solution: %s (%d moves)\n", formatOrDash(solution), len(solution))
	if solveDescribe && len(solution) > 0 {
		fmt.Fprintf(out, "          %s\n", notation.DescribeSequence(solution))
	}
	fmt.Fprintln(out)
	printState(out, e, !solvePlain, false)

	if !e.IsSolved() {
		return fmt.Errorf("cube not solved after %s", gocube.FormatMoves(solution))
	}
	return nil
}
