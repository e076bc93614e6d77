package cli

import (
	"github.com/spf13/cobra"
)

var (
	scrambleSeed     uint64
	scrambleDescribe bool
	scramblePlain    bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble [moves...]",
	Short: "Scramble a virtual cube and print it",
	Long: `Scramble a solved cube and print the resulting net.

With no arguments the cube is shuffled with random outer-layer quarter
turns. Otherwise the given moves are applied in order:

  gocube scramble R U R' U'
  gocube scramble --seed 42`,
	RunE: runScramble,
}

func init() {
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Seed for the random shuffle (0 = random)")
	scrambleCmd.Flags().BoolVar(&scrambleDescribe, "describe", false, "Also describe the moves in plain language")
	scrambleCmd.Flags().BoolVar(&scramblePlain, "plain", false, "Print the net as letters instead of colors")
	rootCmd.AddCommand(scrambleCmd)
}

func runScramble(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(runtimeOptions{source: "scramble", record: true, seed: seedFlag(scrambleSeed)})
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := applyScramble(cmd.Context(), rt.engine, args); err != nil {
		return err
	}

	printState(cmd.OutOrStdout(), rt.engine, !scramblePlain, scrambleDescribe)
	return nil
}

func seedFlag(seed uint64) *uint64 {
	if seed == 0 {
		return nil
	}
	return &seed
}
