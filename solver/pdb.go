package solver

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// patternDB maps full-layout keys to the exact number of blank moves
// between that layout and the solved board, restricted to moves that keep
// tiles 1..ntiles at their goal cells. Entries beyond maxDepth are absent;
// callers fall back to Manhattan.
type patternDB struct {
	size     int
	ntiles   int
	maxDepth int
	depths   map[string]int
}

type pdbKey struct {
	size   int
	ntiles int
}

// pdbStore is the process-wide registry. Tables are built on first use
// under a singleflight latch and immutable afterwards.
type pdbStore struct {
	mu     sync.Mutex
	tables map[pdbKey]*patternDB
	group  singleflight.Group
}

var patternDBs = &pdbStore{tables: make(map[pdbKey]*patternDB)}

// getPDB returns the table for (size, ntiles), building it on first use.
// Concurrent first-uses share one build. Repeated calls are no-ops.
func getPDB(size, ntiles, maxDepth int) *patternDB {
	key := pdbKey{size: size, ntiles: ntiles}
	patternDBs.mu.Lock()
	if db, ok := patternDBs.tables[key]; ok {
		patternDBs.mu.Unlock()
		return db
	}
	patternDBs.mu.Unlock()

	v, _, _ := patternDBs.group.Do(fmt.Sprintf("%d/%d", size, ntiles), func() (any, error) {
		patternDBs.mu.Lock()
		if db, ok := patternDBs.tables[key]; ok {
			patternDBs.mu.Unlock()
			return db, nil
		}
		patternDBs.mu.Unlock()

		db, restored := loadPDBSnapshot(GetConfig().PDBSnapshotDir, size, ntiles, maxDepth)
		if !restored {
			db = buildPDB(size, ntiles, maxDepth)
			storePDBSnapshot(GetConfig().PDBSnapshotDir, db)
		}
		patternDBs.mu.Lock()
		patternDBs.tables[key] = db
		patternDBs.mu.Unlock()
		return db, nil
	})
	return v.(*patternDB)
}

// lookupPDB probes an already-built table; it never triggers a build.
func lookupPDB(size, ntiles int, key string) (int, bool) {
	patternDBs.mu.Lock()
	db, ok := patternDBs.tables[pdbKey{size: size, ntiles: ntiles}]
	patternDBs.mu.Unlock()
	if !ok {
		return 0, false
	}
	d, ok := db.depths[key]
	return d, ok
}

type pdbFrontierItem struct {
	tiles []uint8
	depth int
}

// buildPDB runs a breadth-first expansion of blank moves from the solved
// board. A child is accepted only if tiles 1..ntiles are still at their
// goal cells, so every recorded depth is the true constrained distance to
// the solved layout within the cap.
func buildPDB(size, ntiles, maxDepth int) *patternDB {
	start := time.Now()
	solved := NewBoard(size)
	db := &patternDB{
		size:     size,
		ntiles:   ntiles,
		maxDepth: maxDepth,
		depths:   make(map[string]int),
	}

	queue := []pdbFrontierItem{{tiles: solved.Bytes(), depth: 0}}
	seen := map[string]struct{}{solved.Key(): {}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		db.depths[string(item.tiles)] = item.depth
		if item.depth >= maxDepth {
			continue
		}
		blank := -1
		for i, v := range item.tiles {
			if v == 0 {
				blank = i
			}
		}
		r, c := blank/size, blank%size
		for _, d := range moveDeltas {
			nr, nc := r+d[0], c+d[1]
			if nr < 0 || nr >= size || nc < 0 || nc >= size {
				continue
			}
			ni := nr*size + nc
			child := make([]uint8, len(item.tiles))
			copy(child, item.tiles)
			child[blank], child[ni] = child[ni], child[blank]
			valid := true
			for i := 0; i < ntiles; i++ {
				if child[i] != uint8(i+1) {
					valid = false
					break
				}
			}
			if !valid {
				continue
			}
			ck := string(child)
			if _, ok := seen[ck]; ok {
				continue
			}
			seen[ck] = struct{}{}
			queue = append(queue, pdbFrontierItem{tiles: child, depth: item.depth + 1})
		}
	}

	elapsed := time.Since(start)
	pdbBuildDuration.Observe(elapsed.Seconds())
	pdbEntries.WithLabelValues(fmt.Sprintf("%dx%d", size, size)).Set(float64(len(db.depths)))
	log.Info().
		Int("size", size).
		Int("tiles", ntiles).
		Int("max_depth", maxDepth).
		Int("entries", len(db.depths)).
		Dur("elapsed", elapsed).
		Msg("pdb built")
	return db
}

// PersistPatternDBs snapshots every built table to the configured
// snapshot directory. Safe to call at shutdown; a no-op when no directory
// is configured.
func PersistPatternDBs() {
	dir := GetConfig().PDBSnapshotDir
	if dir == "" {
		return
	}
	patternDBs.mu.Lock()
	tables := make([]*patternDB, 0, len(patternDBs.tables))
	for _, db := range patternDBs.tables {
		tables = append(tables, db)
	}
	patternDBs.mu.Unlock()
	for _, db := range tables {
		storePDBSnapshot(dir, db)
	}
}
