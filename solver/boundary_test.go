package solver

import "testing"

func TestShuffleStatePreservesPermutation(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 100)
	if err := validateTiles(state, 4); err != nil {
		t.Fatalf("shuffled state is not a permutation: %v (%v)", err, state)
	}
}

func TestValidateSolutionRejectsWrongMoves(t *testing.T) {
	state := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 14, 15}
	if ValidateSolution(state, 4, []byte{15, 14}) == 1 {
		t.Fatalf("wrong move order must not validate")
	}
	if ValidateSolution(state, 4, []byte{14, 15}) != 1 {
		t.Fatalf("correct moves must validate")
	}
}

func TestGetManhattanBoundary(t *testing.T) {
	if got := GetManhattan(solved4x4Bytes(), 4); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := GetManhattan(solved4x4Bytes(), 3); got != -1 {
		t.Fatalf("unsupported size must return -1, got %d", got)
	}
}

func TestGetPDBHeuristicFallsBackToManhattan(t *testing.T) {
	state := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15}
	got := GetPDBHeuristic(state, 4, StageEndgame)
	if got < 1 {
		t.Fatalf("one-move board must report a positive heuristic, got %d", got)
	}
}

func TestSolveRecoversMovesBufferTooSmall(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 30)
	if NewBoardFromBytes(state, 4).IsSolved() {
		t.Skip("shuffle landed back on the solved board")
	}
	if got := SolvePuzzle(state, 4, AllocMoves(1)); got != -1 {
		t.Fatalf("undersized moves buffer must surface as -1, got %d", got)
	}
}

func TestAllocHelpers(t *testing.T) {
	buf := AllocState(16)
	if len(buf) != 16 {
		t.Fatalf("expected 16-byte buffer, got %d", len(buf))
	}
	FreeState(buf)
	FreeMoves(AllocMoves(200))
}
