package solver

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

type pdbSnapshot struct {
	Size     int
	Tiles    int
	MaxDepth int
	Depths   map[string]int
}

func pdbSnapshotPath(dir string, size, ntiles int) string {
	return filepath.Join(dir, fmt.Sprintf("pdb_%dx%d_t%d.gob.zst", size, size, ntiles))
}

// loadPDBSnapshot restores a table from disk. A snapshot whose shape does
// not match the requested build parameters is skipped, not trusted.
func loadPDBSnapshot(dir string, size, ntiles, maxDepth int) (*patternDB, bool) {
	if dir == "" {
		return nil, false
	}
	path := pdbSnapshotPath(dir, size, ntiles)
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("failed to open pdb snapshot")
		}
		return nil, false
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to create zstd reader")
		return nil, false
	}
	defer decoder.Close()

	var snapshot pdbSnapshot
	if err := gob.NewDecoder(decoder).Decode(&snapshot); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to decode pdb snapshot")
		return nil, false
	}
	if snapshot.Size != size || snapshot.Tiles != ntiles || snapshot.MaxDepth != maxDepth {
		log.Warn().
			Str("path", path).
			Int("snapshot_depth", snapshot.MaxDepth).
			Int("want_depth", maxDepth).
			Msg("pdb snapshot does not match current build parameters; skipping")
		return nil, false
	}
	log.Info().Str("path", path).Int("entries", len(snapshot.Depths)).Msg("restored pdb snapshot")
	return &patternDB{
		size:     snapshot.Size,
		ntiles:   snapshot.Tiles,
		maxDepth: snapshot.MaxDepth,
		depths:   snapshot.Depths,
	}, true
}

func storePDBSnapshot(dir string, db *patternDB) {
	if dir == "" || db == nil {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("unable to create pdb snapshot directory")
		return
	}
	path := pdbSnapshotPath(dir, db.size, db.ntiles)
	file, err := os.Create(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to create pdb snapshot")
		return
	}
	defer file.Close()

	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		log.Warn().Err(err).Msg("failed to create zstd writer")
		return
	}
	snapshot := pdbSnapshot{
		Size:     db.size,
		Tiles:    db.ntiles,
		MaxDepth: db.maxDepth,
		Depths:   db.depths,
	}
	if err := gob.NewEncoder(encoder).Encode(&snapshot); err != nil {
		encoder.Close()
		log.Warn().Err(err).Str("path", path).Msg("failed to encode pdb snapshot")
		return
	}
	if err := encoder.Close(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to flush pdb snapshot")
		return
	}
	log.Info().Str("path", path).Int("entries", len(db.depths)).Msg("stored pdb snapshot")
}
