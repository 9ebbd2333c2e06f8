package solver

import "testing"

func TestPDBSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := buildPDB(4, 6, 5)
	storePDBSnapshot(dir, db)

	restored, ok := loadPDBSnapshot(dir, 4, 6, 5)
	if !ok {
		t.Fatalf("expected snapshot to restore")
	}
	if len(restored.depths) != len(db.depths) {
		t.Fatalf("restored %d entries, want %d", len(restored.depths), len(db.depths))
	}
	for key, depth := range db.depths {
		if restored.depths[key] != depth {
			t.Fatalf("depth mismatch for %v: got %d want %d", []uint8(key), restored.depths[key], depth)
		}
	}
}

func TestPDBSnapshotShapeMismatchSkipped(t *testing.T) {
	dir := t.TempDir()
	storePDBSnapshot(dir, buildPDB(4, 6, 5))
	if _, ok := loadPDBSnapshot(dir, 4, 6, 9); ok {
		t.Fatalf("snapshot with a different depth cap must be skipped")
	}
}

func TestPDBSnapshotMissingFile(t *testing.T) {
	if _, ok := loadPDBSnapshot(t.TempDir(), 4, 6, 5); ok {
		t.Fatalf("missing snapshot must not restore")
	}
}
