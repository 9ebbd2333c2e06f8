package solver

import (
	"errors"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// The functions in this file form the host boundary: flat byte buffers
// in, tile-number bytes out, integer return codes. Hosts that prefer
// errors use Solve directly.

// AllocState returns a state buffer of n bytes. FreeState is its no-op
// counterpart; the collector owns the memory.
func AllocState(n int) []byte { return make([]byte, n) }

func FreeState([]byte) {}

// AllocMoves returns a move buffer of n bytes. A bound of 200 bytes for
// 4×4 and 400 for 5×5 is safe in practice. FreeMoves is its no-op
// counterpart.
func AllocMoves(n int) []byte { return make([]byte, n) }

func FreeMoves([]byte) {}

// Solve validates the input and runs the staged solver. An already-solved
// board returns an empty Result and nil error.
func Solve(state []byte, size int, opts SolveOptions) (Result, error) {
	if err := checkSize(size); err != nil {
		solveTotal.WithLabelValues("unsupported_size").Inc()
		return Result{FailReason: FailInvalidInput}, err
	}
	if err := validateTiles(state, size); err != nil {
		solveTotal.WithLabelValues("invalid_input").Inc()
		return Result{FailReason: FailInvalidInput}, err
	}
	board := NewBoardFromBytes(state, size)
	if board.IsSolved() {
		solveTotal.WithLabelValues("already_solved").Inc()
		return Result{}, nil
	}
	cfg := GetConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	res, err := solveBoard(board, cfg, opts.OnStage)
	solveDuration.Observe(res.Elapsed.Seconds())
	solveNodes.Observe(float64(res.Nodes))
	if err != nil {
		tag := res.FailReason
		if tag == "" {
			tag = FailExhausted
		}
		solveTotal.WithLabelValues(tag).Inc()
		return res, err
	}
	solveMoves.Observe(float64(len(res.Moves)))
	solveTotal.WithLabelValues("solved").Inc()
	return res, nil
}

// SolvePuzzle is the primary integer entry point. It reads size² bytes
// from state, writes one tile-number byte per move into movesOut, and
// returns the move count, 0 for an already-solved board, or −1 on any
// failure. Failures are contained; it never panics outward.
func SolvePuzzle(state []byte, size int, movesOut []byte) (count int) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("solve panicked")
			solveTotal.WithLabelValues("panic").Inc()
			count = -1
		}
	}()
	res, err := Solve(state, size, SolveOptions{})
	if err != nil {
		return -1
	}
	if len(res.Moves) == 0 {
		return 0
	}
	if len(movesOut) < len(res.Moves) {
		log.Error().Int("need", len(res.Moves)).Int("have", len(movesOut)).Msg("moves buffer too small")
		return -1
	}
	copy(movesOut, res.Moves)
	return len(res.Moves)
}

// ValidateSolution replays moves on a copy of state and returns 1 when
// the result is the solved board, 0 otherwise.
func ValidateSolution(state []byte, size int, moves []byte) int {
	if checkSize(size) != nil || len(state) < size*size {
		return 0
	}
	if replaySolves(state, size, moves) {
		return 1
	}
	return 0
}

// GetManhattan is a diagnostic: the Manhattan distance of the layout.
func GetManhattan(state []byte, size int) int {
	if checkSize(size) != nil || len(state) < size*size {
		return -1
	}
	return Manhattan(NewBoardFromBytes(state, size))
}

// GetPDBHeuristic is a diagnostic: the pattern-database depth for the
// layout when present, otherwise the Manhattan distance. The stage
// argument is accepted for boundary compatibility; both stages share the
// per-size table.
func GetPDBHeuristic(state []byte, size, stage int) int {
	if checkSize(size) != nil || len(state) < size*size {
		return -1
	}
	board := NewBoardFromBytes(state, size)
	plan := GetConfig().plan(size)
	if d, ok := lookupPDB(size, plan.PrefixTiles, board.Key()); ok {
		return d
	}
	return Manhattan(board)
}

// ShuffleState applies times random legal blank moves in place. Used for
// test generation; the result is always solvable from solved input.
func ShuffleState(state []byte, size, times int) {
	if checkSize(size) != nil || len(state) < size*size {
		return
	}
	b := NewBoardFromBytes(state, size)
	if b.blank < 0 {
		return
	}
	var buf [4]int
	for t := 0; t < times; t++ {
		options := b.blankNeighbors(buf[:0])
		if len(options) == 0 {
			continue
		}
		b.applyIndex(options[frand.Intn(len(options))])
	}
	copy(state, b.tiles)
}

// TestPDBBuild builds a throwaway pattern database with depth cap 12 and
// returns its entry count. The process-wide registry is untouched.
func TestPDBBuild(size, ntiles int) int {
	if checkSize(size) != nil || ntiles < 1 || ntiles >= size*size {
		return -1
	}
	db := buildPDB(size, ntiles, 12)
	return len(db.depths)
}

// IsSearchFailure reports whether err came from budget exhaustion rather
// than bad input.
func IsSearchFailure(err error) bool {
	return errors.Is(err, ErrSearchExhausted)
}
