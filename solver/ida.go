package solver

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

const overThreshold = math.MaxInt

// idaSettings bounds one IDA* invocation.
type idaSettings struct {
	Size        int
	Stage       int
	PrefixTiles int
	NodeLimit   int
	TimeLimit   time.Duration
	// ThresholdCap fails the search with FailSearchLimit once the next
	// f-threshold would exceed it. Zero means uncapped.
	ThresholdCap int
	Locked       LockedMask
}

type idaSearcher struct {
	settings   idaSettings
	tt         *TranspositionTable
	threshold  int
	iterNodes  int
	totalNodes int
	path       []uint8
	found      bool
	failReason string
}

// searchIDA runs iterative-deepening A*: repeated depth-first probes under
// a growing f-cost threshold. The transposition table is cleared at every
// threshold increase. Wall clock is sampled between iterations only; the
// node limit bounds time within an iteration.
func searchIDA(start Board, settings idaSettings) SearchResult {
	s := &idaSearcher{
		settings:  settings,
		tt:        NewTranspositionTable(),
		threshold: stageHeuristic(start, settings.Stage, settings.PrefixTiles),
	}
	began := time.Now()
	for {
		if s.settings.ThresholdCap > 0 && s.threshold > s.settings.ThresholdCap {
			s.failReason = FailSearchLimit
			break
		}
		s.iterNodes = 0
		s.tt.Clear()
		next := s.dfs(start, 0, -1)
		s.totalNodes += s.iterNodes
		if s.found {
			break
		}
		if s.failReason == FailNone && next == overThreshold {
			s.failReason = FailSearchLimit
		}
		if s.failReason != FailNone {
			break
		}
		s.threshold = next
		if time.Since(began) > s.settings.TimeLimit {
			s.failReason = FailTimeout
			break
		}
		log.Debug().
			Int("stage", s.settings.Stage).
			Int("threshold", s.threshold).
			Int("nodes", s.totalNodes).
			Int("tt_size", s.tt.Size()).
			Msg("deepening")
	}
	if !s.found {
		return SearchResult{Nodes: s.totalNodes, FailReason: s.failReason}
	}
	moves := make([]uint8, len(s.path))
	copy(moves, s.path)
	return SearchResult{Moves: moves, Success: true, Nodes: s.totalNodes}
}

// dfs explores under the current threshold and returns the minimum f-cost
// that exceeded it, or overThreshold when every line was cut off.
func (s *idaSearcher) dfs(state Board, g, prevBlank int) int {
	s.iterNodes++
	if s.iterNodes > s.settings.NodeLimit {
		s.failReason = FailNodeLimit
		return overThreshold
	}
	if s.isGoal(state) {
		s.found = true
		return -1
	}
	h := stageHeuristic(state, s.settings.Stage, s.settings.PrefixTiles)
	if f := g + h; f > s.threshold {
		return f
	}
	s.tt.Insert(state.Key())

	minNext := overThreshold
	var buf [4]int
	for _, ni := range state.blankNeighbors(buf[:0]) {
		if s.settings.Locked.Has(ni) {
			continue
		}
		if ni == prevBlank {
			continue
		}
		child := state.Clone()
		tile := child.applyIndex(ni)
		if s.symmetrySeen(child) {
			continue
		}
		s.path = append(s.path, tile)
		next := s.dfs(child, g+1, state.blank)
		if s.found {
			return -1
		}
		if next < minNext {
			minNext = next
		}
		s.path = s.path[:len(s.path)-1]
	}
	return minNext
}

func (s *idaSearcher) isGoal(state Board) bool {
	if s.settings.Stage == StagePrefix {
		return prefixPlaced(state, s.settings.PrefixTiles)
	}
	return state.IsSolved()
}

// symmetrySeen prunes a child when any of its eight symmetric images was
// already visited in this iteration. Rotated layouts are not equivalent
// puzzles, so this trades completeness of a single iteration for pruning
// power. In the endgame the BFS fallback absorbs the loss; a stage-1
// search that misses its goal fails the whole solve.
func (s *idaSearcher) symmetrySeen(child Board) bool {
	for _, img := range allSymmetries(child.tiles, child.size) {
		if s.tt.Exists(string(img)) {
			return true
		}
	}
	return false
}
