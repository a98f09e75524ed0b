package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/ports"
)

// MaxSize is the largest accepted grid edge.
const MaxSize = 64

var (
	ErrInvalidSize    = errors.New("generator: grid size out of range")
	ErrTooManyCandles = errors.New("generator: candle count out of range")
)

// SeededRandom adapts math/rand to ports.Random.
type SeededRandom struct{ rng *rand.Rand }

// NewRandom returns a reproducible random source for the given seed.
func NewRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (s *SeededRandom) Intn(n int) int { return s.rng.Intn(n) }

// Generate places candles at distinct uniformly random cells of a size×size
// grid and computes the adjacency count of every other tile.
func Generate(rng ports.Random, size, candles int) ([][]domain.Tile, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidSize, size, MaxSize)
	}
	if candles < 0 || candles > size*size {
		return nil, fmt.Errorf("%w: %d candles on a %dx%d grid", ErrTooManyCandles, candles, size, size)
	}

	grid := make([][]domain.Tile, size)
	for r := range grid {
		grid[r] = make([]domain.Tile, size)
		for c := range grid[r] {
			grid[r][c] = domain.Tile{Row: r, Col: c, State: domain.Hidden}
		}
	}

	// Rejection sampling keeps placement uniform without replacement.
	placed := 0
	for placed < candles {
		pos := rng.Intn(size * size)
		t := &grid[pos/size][pos%size]
		if t.IsCandle {
			continue
		}
		t.IsCandle = true
		placed++
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if grid[r][c].IsCandle {
				continue
			}
			n := 0
			Around(size, r, c, func(nr, nc int) {
				if grid[nr][nc].IsCandle {
					n++
				}
			})
			grid[r][c].AdjacentCandles = n
		}
	}
	return grid, nil
}

// Around calls fn for every in-bounds 8-neighbor of (r, c).
func Around(size, r, c int, fn func(nr, nc int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if nr >= 0 && nc >= 0 && nr < size && nc < size {
				fn(nr, nc)
			}
		}
	}
}
