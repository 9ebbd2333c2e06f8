package solver

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// searchEndgameParallel fans the same endgame search out to several IDA*
// workers, each owning its transposition table. The found flag is
// advisory; workers run to their own termination and the dispatcher joins
// all of them before picking the first success in worker order.
func searchEndgameParallel(start Board, settings idaSettings, workers int) SearchResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]SearchResult, workers)
	var found atomic.Bool

	var g errgroup.Group
	for t := 0; t < workers; t++ {
		t := t
		g.Go(func() error {
			results[t] = searchIDA(start.Clone(), settings)
			if results[t].Success {
				found.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()

	totalNodes := 0
	for _, res := range results {
		totalNodes += res.Nodes
	}
	log.Debug().Int("workers", workers).Bool("found", found.Load()).Int("nodes", totalNodes).Msg("endgame workers joined")

	for _, res := range results {
		if res.Success {
			res.Nodes = totalNodes
			return res
		}
	}
	failed := results[0]
	failed.Nodes = totalNodes
	return failed
}
