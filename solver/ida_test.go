package solver

import (
	"testing"
	"time"
)

func endgameSettings(size int) idaSettings {
	return idaSettings{
		Size:        size,
		Stage:       StageEndgame,
		PrefixTiles: 6,
		NodeLimit:   100000,
		TimeLimit:   5 * time.Second,
		Locked:      NewLockedMask(size * size),
	}
}

func TestIDASolvesOneMoveBoard(t *testing.T) {
	b := NewBoardFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15}, 4)
	res := searchIDA(b, endgameSettings(4))
	if !res.Success {
		t.Fatalf("search failed: %s", res.FailReason)
	}
	if len(res.Moves) != 1 || res.Moves[0] != 15 {
		t.Fatalf("expected single move [15], got %v", res.Moves)
	}
}

func TestIDASolvesTwoMoveBoard(t *testing.T) {
	b := NewBoardFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 14, 15}, 4)
	res := searchIDA(b, endgameSettings(4))
	if !res.Success {
		t.Fatalf("search failed: %s", res.FailReason)
	}
	if len(res.Moves) != 2 || res.Moves[0] != 14 || res.Moves[1] != 15 {
		t.Fatalf("expected moves [14 15], got %v", res.Moves)
	}
}

func TestIDAStagePrefixStopsAtStageGoal(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 20)
	b := NewBoardFromBytes(state, 4)
	if prefixPlaced(b, 6) {
		t.Skip("shuffle left the prefix placed")
	}
	settings := endgameSettings(4)
	settings.Stage = StagePrefix
	settings.NodeLimit = 300000
	res := searchIDA(b, settings)
	if !res.Success {
		t.Fatalf("stage 1 search failed: %s", res.FailReason)
	}
	ApplyMoves(&b, res.Moves)
	if !prefixPlaced(b, 6) {
		t.Fatalf("stage 1 solution must place tiles 1..6: %s", b.String())
	}
}

func TestIDARefusesLockedCells(t *testing.T) {
	// The only solving move slides tile 15 out of a locked cell.
	b := NewBoardFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15}, 4)
	settings := endgameSettings(4)
	settings.NodeLimit = 5000
	settings.Locked = NewLockedMask(16)
	settings.Locked.Lock(15)
	res := searchIDA(b, settings)
	if res.Success {
		t.Fatalf("search must not disturb a locked cell, emitted %v", res.Moves)
	}
}

func TestIDANodeLimitTag(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 40)
	b := NewBoardFromBytes(state, 4)
	if b.IsSolved() {
		t.Skip("shuffle landed back on the solved board")
	}
	settings := endgameSettings(4)
	settings.NodeLimit = 2
	res := searchIDA(b, settings)
	if res.Success || res.FailReason != FailNodeLimit {
		t.Fatalf("expected node_limit failure, got success=%t tag=%q", res.Success, res.FailReason)
	}
}

func TestIDAThresholdCapTag(t *testing.T) {
	state := solved4x4Bytes()
	ShuffleState(state, 4, 60)
	b := NewBoardFromBytes(state, 4)
	if Manhattan(b) <= 2 {
		t.Skip("shuffle stayed too close to solved")
	}
	settings := endgameSettings(4)
	settings.ThresholdCap = 2
	res := searchIDA(b, settings)
	if res.Success {
		t.Fatalf("search must fail under a threshold cap below the solution length")
	}
	if res.FailReason != FailSearchLimit {
		t.Fatalf("expected search_limit, got %q", res.FailReason)
	}
}
