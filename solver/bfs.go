package solver

import "github.com/rs/zerolog/log"

type bfsItem struct {
	board Board
	moves []uint8
}

// fallbackBFS is the exhaustive endgame fallback: a forward breadth-first
// search from the start toward the solved board, bounded by depth and node
// budget and honoring the locked mask.
func fallbackBFS(start Board, maxDepth, nodeLimit int, locked LockedMask) SearchResult {
	queue := []bfsItem{{board: start.Clone()}}
	visited := map[string]struct{}{start.Key(): {}}
	nodes := 0

	for len(queue) > 0 && nodes < nodeLimit {
		item := queue[0]
		queue = queue[1:]
		nodes++
		if item.board.IsSolved() {
			return SearchResult{Moves: item.moves, Success: true, Nodes: nodes}
		}
		if len(item.moves) >= maxDepth {
			continue
		}
		var buf [4]int
		for _, ni := range item.board.blankNeighbors(buf[:0]) {
			if locked.Has(ni) {
				continue
			}
			child := item.board.Clone()
			tile := child.applyIndex(ni)
			key := child.Key()
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}
			childMoves := make([]uint8, len(item.moves), len(item.moves)+1)
			copy(childMoves, item.moves)
			queue = append(queue, bfsItem{board: child, moves: append(childMoves, tile)})
		}
	}

	log.Debug().Int("nodes", nodes).Int("visited", len(visited)).Msg("fallback bfs exhausted")
	return SearchResult{Nodes: nodes, FailReason: FailExhausted}
}
