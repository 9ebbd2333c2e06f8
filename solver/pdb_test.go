package solver

import "testing"

func TestBuildPDBRootAndDepths(t *testing.T) {
	db := buildPDB(4, 6, 6)
	root := NewBoard(4)
	if d, ok := db.depths[root.Key()]; !ok || d != 0 {
		t.Fatalf("solved board must map to depth 0, got %d (present=%t)", d, ok)
	}
	if len(db.depths) < 2 {
		t.Fatalf("expected the build to explore past the root, got %d entries", len(db.depths))
	}
	for key, depth := range db.depths {
		if depth < 0 || depth > 6 {
			t.Fatalf("depth %d outside build cap", depth)
		}
		layout := []uint8(key)
		for i := 0; i < 6; i++ {
			if layout[i] != uint8(i+1) {
				t.Fatalf("entry with prefix tile %d out of place: %v", i+1, layout)
			}
		}
	}
}

// Every positive-depth entry must have a neighbor layout one move closer
// to the root: the recorded depths are true constrained BFS distances.
func TestBuildPDBDepthsAreReachable(t *testing.T) {
	db := buildPDB(4, 6, 5)
	for key, depth := range db.depths {
		if depth == 0 {
			continue
		}
		b := NewBoardFromBytes([]byte(key), 4)
		var buf [4]int
		closer := false
		for _, ni := range b.blankNeighbors(buf[:0]) {
			child := b.Clone()
			child.applyIndex(ni)
			if !prefixPlaced(child, 6) {
				continue
			}
			if d, ok := db.depths[child.Key()]; ok && d == depth-1 {
				closer = true
				break
			}
		}
		if !closer {
			t.Fatalf("entry at depth %d has no neighbor at depth %d: %s", depth, depth-1, b.String())
		}
	}
}

func TestGetPDBBuildsOnce(t *testing.T) {
	first := getPDB(4, 2, 4)
	second := getPDB(4, 2, 4)
	if first != second {
		t.Fatalf("repeated getPDB calls must return the same table")
	}
}

func TestTestPDBBuildEntryCount(t *testing.T) {
	count := TestPDBBuild(4, 3)
	if count <= 1 {
		t.Fatalf("expected more than the root entry, got %d", count)
	}
	if TestPDBBuild(3, 3) != -1 {
		t.Fatalf("unsupported size must return -1")
	}
}
