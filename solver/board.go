package solver

import (
	"strconv"
	"strings"
)

// Board is an N×N tile layout. Tiles are 1..size²−1, the blank is 0.
// The blank index is kept in sync with the tiles slice; equality and
// hashing go through Key(), which covers the tiles alone.
type Board struct {
	size  int
	tiles []uint8
	blank int
}

// moveDeltas are the four orthogonal blank moves, row/col order.
var moveDeltas = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func NewBoard(size int) Board {
	b := Board{size: size, tiles: make([]uint8, size*size)}
	for i := 0; i < size*size-1; i++ {
		b.tiles[i] = uint8(i + 1)
	}
	b.blank = size*size - 1
	return b
}

func NewBoardFromBytes(data []byte, size int) Board {
	b := Board{size: size, tiles: make([]uint8, size*size), blank: -1}
	copy(b.tiles, data[:size*size])
	for i, v := range b.tiles {
		if v == 0 {
			b.blank = i
		}
	}
	return b
}

func (b Board) Size() int { return b.size }

func (b Board) BlankIndex() int { return b.blank }

func (b Board) Tile(i int) uint8 { return b.tiles[i] }

func (b Board) Bytes() []byte {
	out := make([]byte, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Key is the layout identity used by the transposition table and the
// pattern databases.
func (b Board) Key() string { return string(b.tiles) }

func (b Board) IsSolved() bool {
	last := b.size*b.size - 1
	for i := 0; i < last; i++ {
		if b.tiles[i] != uint8(i+1) {
			return false
		}
	}
	return b.tiles[last] == 0
}

func (b Board) Clone() Board {
	clone := Board{size: b.size, blank: b.blank}
	clone.tiles = make([]uint8, len(b.tiles))
	copy(clone.tiles, b.tiles)
	return clone
}

// blankNeighbors appends the cell indices the blank can move to.
func (b Board) blankNeighbors(dst []int) []int {
	r, c := b.blank/b.size, b.blank%b.size
	for _, d := range moveDeltas {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr >= b.size || nc < 0 || nc >= b.size {
			continue
		}
		dst = append(dst, nr*b.size+nc)
	}
	return dst
}

// applyIndex slides the tile at cell idx into the blank. The caller is
// responsible for idx being adjacent to the blank.
func (b *Board) applyIndex(idx int) uint8 {
	tile := b.tiles[idx]
	b.tiles[b.blank] = tile
	b.tiles[idx] = 0
	b.blank = idx
	return tile
}

// ApplyMoves replays a tile-number move sequence. Playback locates each
// tile and swaps it with the blank; legality is the producer's contract.
func ApplyMoves(b *Board, moves []uint8) {
	for _, mv := range moves {
		from := -1
		for j, v := range b.tiles {
			if v == mv {
				from = j
			}
		}
		if from < 0 {
			continue
		}
		b.applyIndex(from)
	}
}

func (b Board) String() string {
	var sb strings.Builder
	for i, v := range b.tiles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if v == 0 {
			sb.WriteByte('_')
		} else {
			sb.WriteString(strconv.Itoa(int(v)))
		}
	}
	return sb.String()
}
