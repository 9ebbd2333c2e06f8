package solver

import "testing"

func TestFallbackBFSSolvesShortScramble(t *testing.T) {
	b := NewBoardFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 14, 15}, 4)
	res := fallbackBFS(b, 10, 100000, NewLockedMask(16))
	if !res.Success {
		t.Fatalf("bfs failed: %s", res.FailReason)
	}
	if len(res.Moves) != 2 {
		t.Fatalf("expected the 2-move optimum, got %v", res.Moves)
	}
	replay := b.Clone()
	ApplyMoves(&replay, res.Moves)
	if !replay.IsSolved() {
		t.Fatalf("bfs moves do not solve the board")
	}
}

func TestFallbackBFSHonorsLockedCells(t *testing.T) {
	b := NewBoardFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15}, 4)
	locked := NewLockedMask(16)
	locked.Lock(15)
	res := fallbackBFS(b, 10, 10000, locked)
	if res.Success {
		t.Fatalf("bfs must not move a tile out of a locked cell")
	}
	if res.FailReason != FailExhausted {
		t.Fatalf("expected tag %q, got %q", FailExhausted, res.FailReason)
	}
}

func TestFallbackBFSNodeBudget(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 50)
	b := NewBoardFromBytes(state, 4)
	if b.IsSolved() {
		t.Skip("shuffle landed back on the solved board")
	}
	res := fallbackBFS(b, 40, 1, NewLockedMask(16))
	if res.Success {
		t.Fatalf("a one-node budget must not solve a scramble")
	}
	if res.FailReason != FailExhausted {
		t.Fatalf("expected tag %q, got %q", FailExhausted, res.FailReason)
	}
}
