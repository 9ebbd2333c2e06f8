package solver

import "testing"

func solved5x5Bytes() []byte {
	state := make([]byte, 25)
	for i := 0; i < 24; i++ {
		state[i] = byte(i + 1)
	}
	return state
}

func TestSolveAlreadySolved4x4(t *testing.T) {
	moves := AllocMoves(200)
	if got := SolvePuzzle(solved4x4Bytes(), 4, moves); got != 0 {
		t.Fatalf("solved board must return 0, got %d", got)
	}
}

func TestSolveOneMove4x4(t *testing.T) {
	state := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15}
	moves := AllocMoves(200)
	got := SolvePuzzle(state, 4, moves)
	if got != 1 {
		t.Fatalf("expected 1 move, got %d", got)
	}
	if moves[0] != 15 {
		t.Fatalf("expected the single move to be tile 15, got %d", moves[0])
	}
	if ValidateSolution(state, 4, moves[:got]) != 1 {
		t.Fatalf("solution must validate")
	}
}

func TestSolveTwoMoves4x4(t *testing.T) {
	state := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 14, 15}
	moves := AllocMoves(200)
	got := SolvePuzzle(state, 4, moves)
	if got != 2 {
		t.Fatalf("expected 2 moves, got %d", got)
	}
	if moves[0] != 14 || moves[1] != 15 {
		t.Fatalf("expected moves [14 15], got %v", moves[:got])
	}
	if ValidateSolution(state, 4, moves[:got]) != 1 {
		t.Fatalf("solution must validate")
	}
}

func TestSolveModerateScramble4x4(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 30)
	moves := AllocMoves(200)
	got := SolvePuzzle(state, 4, moves)
	if got < 0 {
		t.Fatalf("solver failed on a 30-move scramble: %s", NewBoardFromBytes(state, 4).String())
	}
	if got > 80 {
		t.Fatalf("solution too long: %d moves", got)
	}
	if ValidateSolution(state, 4, moves[:got]) != 1 {
		t.Fatalf("solution must validate")
	}
}

func TestSolveAlreadySolved5x5(t *testing.T) {
	moves := AllocMoves(400)
	if got := SolvePuzzle(solved5x5Bytes(), 5, moves); got != 0 {
		t.Fatalf("solved board must return 0, got %d", got)
	}
}

func TestSolveLightScramble5x5(t *testing.T) {
	state := solved5x5Bytes()
	ShuffleState(state, 5, 20)
	moves := AllocMoves(400)
	got := SolvePuzzle(state, 5, moves)
	if got < 0 {
		t.Fatalf("solver failed on a 20-move scramble: %s", NewBoardFromBytes(state, 5).String())
	}
	if got > 200 {
		t.Fatalf("solution too long: %d moves", got)
	}
	if ValidateSolution(state, 5, moves[:got]) != 1 {
		t.Fatalf("solution must validate")
	}
}

func TestSolveRejectsDuplicateTile(t *testing.T) {
	state := solved4x4Bytes()
	state[0] = 2
	if got := SolvePuzzle(state, 4, AllocMoves(200)); got != -1 {
		t.Fatalf("duplicate tile must return -1, got %d", got)
	}
}

func TestSolveRejectsUnsupportedSizes(t *testing.T) {
	if got := SolvePuzzle([]byte{1, 2, 3, 4, 5, 6, 7, 8, 0}, 3, AllocMoves(200)); got != -1 {
		t.Fatalf("size 3 must return -1, got %d", got)
	}
	state := make([]byte, 36)
	for i := 0; i < 35; i++ {
		state[i] = byte(i + 1)
	}
	if got := SolvePuzzle(state, 6, AllocMoves(400)); got != -1 {
		t.Fatalf("size 6 must return -1, got %d", got)
	}
}

// Once the stage controller locks a prefix cell, no later move may
// disturb it. Replays the solution against the lock events.
func TestSolveKeepsLockedPrefixStable(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 30)
	if NewBoardFromBytes(state, 4).IsSolved() {
		t.Skip("shuffle landed back on the solved board")
	}

	type lockPoint struct {
		tile  int
		moves int
	}
	var locks []lockPoint
	res, err := Solve(state, 4, SolveOptions{OnStage: func(ev StageEvent) {
		if ev.Kind == EventTileLocked {
			locks = append(locks, lockPoint{tile: ev.Tile, moves: ev.Moves})
		}
	}})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if len(locks) != 6 {
		t.Fatalf("expected 6 lock events, got %d", len(locks))
	}

	b := NewBoardFromBytes(state, 4)
	for step, mv := range res.Moves {
		ApplyMoves(&b, []uint8{mv})
		for _, lock := range locks {
			if step+1 <= lock.moves {
				continue
			}
			if b.Tile(lock.tile-1) != uint8(lock.tile) {
				t.Fatalf("move %d disturbed locked tile %d: %s", step+1, lock.tile, b.String())
			}
		}
	}
	if !b.IsSolved() {
		t.Fatalf("replay must end on the solved board")
	}
}
