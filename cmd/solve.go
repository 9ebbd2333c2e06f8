package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rafsan1711/sliding-puzzle-with-Solver-IDA/solver"
)

var (
	solveSize    int
	solveBoard   string
	solveShuffle int
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a sliding-tile board",
		Long: `Solve a 4x4 or 5x5 board and print the tile-move sequence.

Examples:
  slidesolver solve --size 4 --board 1,2,3,4,5,6,7,8,9,10,11,12,13,0,14,15
  slidesolver solve --size 5 --shuffle 30`,
		RunE: runSolve,
	}

	solveCmd.Flags().IntVarP(&solveSize, "size", "s", 4, "Board size (4 or 5)")
	solveCmd.Flags().StringVarP(&solveBoard, "board", "b", "", "Comma-separated row-major cells, 0 for the blank")
	solveCmd.Flags().IntVar(&solveShuffle, "shuffle", 0, "Shuffle the solved board this many moves instead of reading --board")

	rootCmd.AddCommand(solveCmd)
}

// parseBoard parses a comma-separated row-major cell list.
func parseBoard(s string, size int) ([]byte, error) {
	parts := strings.Split(s, ",")
	if len(parts) != size*size {
		return nil, fmt.Errorf("board must hold %d cells, got %d", size*size, len(parts))
	}
	state := make([]byte, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid cell %d: %w", i, err)
		}
		if v < 0 || v >= size*size {
			return nil, fmt.Errorf("cell %d holds %d, outside 0..%d", i, v, size*size-1)
		}
		state[i] = byte(v)
	}
	return state, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	var state []byte
	switch {
	case solveShuffle > 0:
		state = solvedState(solveSize)
		solver.ShuffleState(state, solveSize, solveShuffle)
		fmt.Printf("board: %s\n", boardString(state))
	case solveBoard != "":
		var err error
		state, err = parseBoard(solveBoard, solveSize)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --board or --shuffle is required")
	}

	res, err := solver.Solve(state, solveSize, solver.SolveOptions{})
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	if len(res.Moves) == 0 {
		fmt.Println("board already solved")
		return nil
	}
	moves := make([]string, len(res.Moves))
	for i, mv := range res.Moves {
		moves[i] = strconv.Itoa(int(mv))
	}
	fmt.Printf("moves (%d): %s\n", len(res.Moves), strings.Join(moves, " "))
	fmt.Printf("nodes: %d  elapsed: %s\n", res.Nodes, res.Elapsed.Round(100*time.Microsecond))
	return nil
}

func solvedState(size int) []byte {
	state := make([]byte, size*size)
	for i := 0; i < size*size-1; i++ {
		state[i] = byte(i + 1)
	}
	return state
}

func boardString(state []byte) string {
	cells := make([]string, len(state))
	for i, v := range state {
		cells[i] = strconv.Itoa(int(v))
	}
	return strings.Join(cells, ",")
}
