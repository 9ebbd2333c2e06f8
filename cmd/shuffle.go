package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rafsan1711/sliding-puzzle-with-Solver-IDA/solver"
)

var (
	shuffleSize  int
	shuffleTimes int
)

func init() {
	shuffleCmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Print a scrambled board",
		Long: `Apply random legal blank moves to the solved board and print the result.

Examples:
  slidesolver shuffle --size 4 --times 30
  slidesolver shuffle -s 5 -t 50`,
		RunE: runShuffle,
	}

	shuffleCmd.Flags().IntVarP(&shuffleSize, "size", "s", 4, "Board size (4 or 5)")
	shuffleCmd.Flags().IntVarP(&shuffleTimes, "times", "t", 30, "Number of random moves")

	rootCmd.AddCommand(shuffleCmd)
}

func runShuffle(cmd *cobra.Command, args []string) error {
	if shuffleSize != 4 && shuffleSize != 5 {
		return fmt.Errorf("size must be 4 or 5, got %d", shuffleSize)
	}
	state := solvedState(shuffleSize)
	solver.ShuffleState(state, shuffleSize, shuffleTimes)
	fmt.Println(boardString(state))
	fmt.Printf("manhattan: %d\n", solver.GetManhattan(state, shuffleSize))
	return nil
}
