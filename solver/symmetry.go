package solver

// rotate90 maps cell (r,c) to (c, size-1-r).
func rotate90(t []uint8, size int) []uint8 {
	res := make([]uint8, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			res[c*size+size-1-r] = t[r*size+c]
		}
	}
	return res
}

func reflectH(t []uint8, size int) []uint8 {
	res := make([]uint8, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			res[r*size+size-1-c] = t[r*size+c]
		}
	}
	return res
}

// allSymmetries returns the eight images of a layout: identity, the three
// further 90° rotations, and the horizontal reflection of each. The
// identity is always first.
func allSymmetries(t []uint8, size int) [][]uint8 {
	res := make([][]uint8, 0, 8)
	id := make([]uint8, len(t))
	copy(id, t)
	r90 := rotate90(t, size)
	r180 := rotate90(r90, size)
	r270 := rotate90(r180, size)
	res = append(res, id, r90, r180, r270)
	res = append(res, reflectH(id, size), reflectH(r90, size), reflectH(r180, size), reflectH(r270, size))
	return res
}
