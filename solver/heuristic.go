package solver

// Manhattan is the sum over non-blank tiles of the row and column
// distances to their goal cells. Zero exactly on the solved board.
func Manhattan(b Board) int {
	size := b.size
	dist := 0
	for i, v := range b.tiles {
		if v == 0 {
			continue
		}
		gi := int(v) - 1
		gr, gc := gi/size, gi%size
		cr, cc := i/size, i%size
		dist += abs(gr-cr) + abs(gc-cc)
	}
	return dist
}

// prefixManhattan restricts the distance sum to tiles 1..ntiles, the
// tiles a stage-1 search is trying to place. Zero exactly when the stage
// goal holds.
func prefixManhattan(b Board, ntiles int) int {
	size := b.size
	dist := 0
	for i, v := range b.tiles {
		if v == 0 || int(v) > ntiles {
			continue
		}
		gi := int(v) - 1
		gr, gc := gi/size, gi%size
		cr, cc := i/size, i%size
		dist += abs(gr-cr) + abs(gc-cc)
	}
	return dist
}

// stageHeuristic is the h(state, stage) mix: the pattern database depth
// when the layout is present, otherwise Manhattan — full Manhattan for
// the endgame, prefix-restricted for stage 1. Never the max of the two.
func stageHeuristic(b Board, stage, ntiles int) int {
	if d, ok := lookupPDB(b.size, ntiles, b.Key()); ok {
		return d
	}
	if stage == StagePrefix {
		return prefixManhattan(b, ntiles)
	}
	return Manhattan(b)
}

func prefixPlaced(b Board, ntiles int) bool {
	for i := 0; i < ntiles; i++ {
		if b.tiles[i] != uint8(i+1) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
