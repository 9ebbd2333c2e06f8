package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rafsan1711/sliding-puzzle-with-Solver-IDA/solver"
)

var (
	pdbSize  int
	pdbTiles int
)

func init() {
	pdbCmd := &cobra.Command{
		Use:   "pdb",
		Short: "Build a pattern database and report its entry count",
		Long: `Build a throwaway pattern database with the test depth cap and print
how many layouts it holds.

Examples:
  slidesolver pdb --size 4 --tiles 6
  slidesolver pdb -s 5 -t 12`,
		RunE: runPDB,
	}

	pdbCmd.Flags().IntVarP(&pdbSize, "size", "s", 4, "Board size (4 or 5)")
	pdbCmd.Flags().IntVarP(&pdbTiles, "tiles", "t", 6, "Prefix tile count")

	rootCmd.AddCommand(pdbCmd)
}

func runPDB(cmd *cobra.Command, args []string) error {
	count := solver.TestPDBBuild(pdbSize, pdbTiles)
	if count < 0 {
		return fmt.Errorf("invalid build parameters: size=%d tiles=%d", pdbSize, pdbTiles)
	}
	fmt.Printf("pdb entries: %d\n", count)
	return nil
}
