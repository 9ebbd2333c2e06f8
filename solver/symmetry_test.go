package solver

import "testing"

func TestRotateFourTimesIsIdentity(t *testing.T) {
	b := NewBoardFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 14, 15}, 4)
	cur := b.Bytes()
	for i := 0; i < 4; i++ {
		cur = rotate90(cur, 4)
	}
	if string(cur) != b.Key() {
		t.Fatalf("four rotations must be the identity")
	}
}

func TestReflectTwiceIsIdentity(t *testing.T) {
	b := NewBoardFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 14, 15}, 4)
	once := reflectH(b.Bytes(), 4)
	twice := reflectH(once, 4)
	if string(twice) != b.Key() {
		t.Fatalf("double reflection must be the identity")
	}
}

func TestAllSymmetriesShape(t *testing.T) {
	b := NewBoard(4)
	images := allSymmetries(b.Bytes(), 4)
	if len(images) != 8 {
		t.Fatalf("expected 8 images, got %d", len(images))
	}
	if string(images[0]) != b.Key() {
		t.Fatalf("first image must be the identity")
	}
}
