package solver

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// LockedMask marks cells whose contents must not change during a search.
// The stage controller grows it monotonically; searchers only read it.
type LockedMask []bool

func NewLockedMask(cells int) LockedMask {
	return make(LockedMask, cells)
}

func (m LockedMask) Has(i int) bool {
	return i >= 0 && i < len(m) && m[i]
}

func (m LockedMask) Lock(i int) {
	m[i] = true
}

func (m LockedMask) Count() int {
	count := 0
	for _, locked := range m {
		if locked {
			count++
		}
	}
	return count
}

// solveBoard drives the progressive-locking pipeline: place each prefix
// tile with a stage-1 IDA* and lock its cell, then run the endgame search
// with the whole prefix locked, falling back to BFS on failure.
func solveBoard(start Board, cfg Config, onStage func(StageEvent)) (Result, error) {
	began := time.Now()
	size := start.Size()
	plan := cfg.plan(size)
	emit := func(ev StageEvent) {
		if onStage != nil {
			ev.Size = size
			onStage(ev)
		}
	}

	getPDB(size, plan.PrefixTiles, plan.PDBMaxDepth)

	cur := start.Clone()
	locked := NewLockedMask(size * size)
	var all []uint8
	totalNodes := 0

	for i := 0; i < plan.PrefixTiles; i++ {
		if cur.Tile(i) == uint8(i+1) {
			locked.Lock(i)
			emit(StageEvent{Kind: EventTileLocked, Stage: StagePrefix, Tile: i + 1, Moves: len(all), Nodes: totalNodes})
			continue
		}
		emit(StageEvent{Kind: EventStageStarted, Stage: StagePrefix, Tile: i + 1})
		res := searchIDA(cur, idaSettings{
			Size:        size,
			Stage:       StagePrefix,
			PrefixTiles: plan.PrefixTiles,
			NodeLimit:   plan.Stage1NodeLimit,
			TimeLimit:   time.Duration(plan.Stage1TimeMs) * time.Millisecond,
			Locked:      locked,
		})
		totalNodes += res.Nodes
		if !res.Success {
			log.Warn().
				Int("size", size).
				Int("tile", i+1).
				Str("fail_reason", res.FailReason).
				Int("nodes", res.Nodes).
				Msg("stage 1 search failed")
			emit(StageEvent{Kind: EventFailed, Stage: StagePrefix, Tile: i + 1, Nodes: totalNodes})
			return Result{Nodes: totalNodes, Elapsed: time.Since(began), FailReason: res.FailReason},
				fmt.Errorf("placing tile %d: %w", i+1, ErrSearchExhausted)
		}
		ApplyMoves(&cur, res.Moves)
		all = append(all, res.Moves...)
		locked.Lock(i)
		emit(StageEvent{Kind: EventTileLocked, Stage: StagePrefix, Tile: i + 1, Moves: len(all), Nodes: totalNodes})
	}

	emit(StageEvent{Kind: EventEndgameStarted, Stage: StageEndgame, Moves: len(all), Nodes: totalNodes})
	endgame := idaSettings{
		Size:         size,
		Stage:        StageEndgame,
		PrefixTiles:  plan.PrefixTiles,
		NodeLimit:    plan.EndgameNodeLimit,
		TimeLimit:    time.Duration(plan.EndgameTimeMs) * time.Millisecond,
		ThresholdCap: plan.EndgameThresholdCap,
		Locked:       locked,
	}
	var res SearchResult
	if plan.EndgameWorkers > 1 {
		res = searchEndgameParallel(cur, endgame, plan.EndgameWorkers)
	} else {
		res = searchIDA(cur, endgame)
	}
	totalNodes += res.Nodes

	if !res.Success {
		log.Info().
			Int("size", size).
			Str("fail_reason", res.FailReason).
			Msg("endgame search failed, trying bfs fallback")
		emit(StageEvent{Kind: EventFallbackStarted, Stage: StageEndgame, Moves: len(all), Nodes: totalNodes})
		res = fallbackBFS(cur, plan.FallbackMaxDepth, plan.FallbackNodeLimit, locked)
		totalNodes += res.Nodes
	}
	if !res.Success {
		emit(StageEvent{Kind: EventFailed, Stage: StageEndgame, Nodes: totalNodes})
		return Result{Nodes: totalNodes, Elapsed: time.Since(began), FailReason: res.FailReason},
			fmt.Errorf("endgame: %w", ErrSearchExhausted)
	}

	ApplyMoves(&cur, res.Moves)
	all = append(all, res.Moves...)
	if !cur.IsSolved() {
		emit(StageEvent{Kind: EventFailed, Stage: StageEndgame, Nodes: totalNodes})
		return Result{Nodes: totalNodes, Elapsed: time.Since(began), FailReason: FailExhausted},
			fmt.Errorf("solution replay left the board unsolved: %w", ErrSearchExhausted)
	}

	elapsed := time.Since(began)
	emit(StageEvent{Kind: EventSolved, Moves: len(all), Nodes: totalNodes})
	log.Info().
		Int("size", size).
		Int("moves", len(all)).
		Int("nodes", totalNodes).
		Dur("elapsed", elapsed).
		Msg("solved")
	return Result{Moves: all, Nodes: totalNodes, Elapsed: elapsed}, nil
}
