package generator

import (
	"errors"
	"testing"
)

// scripted replays a fixed sequence of positions.
type scripted struct {
	seq []int
	i   int
}

func (s *scripted) Intn(n int) int {
	v := s.seq[s.i%len(s.seq)] % n
	s.i++
	return v
}

func TestGenerateCandleCountAndAdjacency(t *testing.T) {
	cases := []struct {
		name          string
		size, candles int
	}{
		{"empty", 4, 0},
		{"default", 8, 10},
		{"dense", 5, 20},
		{"full", 3, 9},
		{"single", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := Generate(NewRandom(42), tc.size, tc.candles)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(grid) != tc.size {
				t.Fatalf("rows = %d, want %d", len(grid), tc.size)
			}
			count := 0
			for r := range grid {
				if len(grid[r]) != tc.size {
					t.Fatalf("row %d has %d cols", r, len(grid[r]))
				}
				for c, tile := range grid[r] {
					if tile.Row != r || tile.Col != c {
						t.Fatalf("tile at (%d,%d) reports (%d,%d)", r, c, tile.Row, tile.Col)
					}
					if tile.IsCandle {
						count++
						continue
					}
					want := 0
					Around(tc.size, r, c, func(nr, nc int) {
						if grid[nr][nc].IsCandle {
							want++
						}
					})
					if tile.AdjacentCandles != want {
						t.Errorf("(%d,%d) adjacent = %d, want %d", r, c, tile.AdjacentCandles, want)
					}
				}
			}
			if count != tc.candles {
				t.Fatalf("candles = %d, want %d", count, tc.candles)
			}
		})
	}
}

func TestGenerateSkipsDuplicatePositions(t *testing.T) {
	// 4 repeats before landing on 0; both candles must still be distinct.
	grid, err := Generate(&scripted{seq: []int{4, 4, 4, 0}}, 3, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !grid[1][1].IsCandle || !grid[0][0].IsCandle {
		t.Fatalf("expected candles at (1,1) and (0,0)")
	}
	if grid[0][1].AdjacentCandles != 2 {
		t.Errorf("(0,1) adjacent = %d, want 2", grid[0][1].AdjacentCandles)
	}
	if grid[2][2].AdjacentCandles != 1 {
		t.Errorf("(2,2) adjacent = %d, want 1", grid[2][2].AdjacentCandles)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	if _, err := Generate(NewRandom(1), 0, 0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size 0: err = %v, want ErrInvalidSize", err)
	}
	if _, err := Generate(NewRandom(1), MaxSize+1, 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size %d: err = %v, want ErrInvalidSize", MaxSize+1, err)
	}
	if _, err := Generate(NewRandom(1), 200000, 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("size 200000: err = %v, want ErrInvalidSize", err)
	}
	if g, err := Generate(NewRandom(1), MaxSize, 1); err != nil || len(g) != MaxSize {
		t.Errorf("size %d: err = %v", MaxSize, err)
	}
	if _, err := Generate(NewRandom(1), 3, 10); !errors.Is(err, ErrTooManyCandles) {
		t.Errorf("10 candles on 3x3: err = %v, want ErrTooManyCandles", err)
	}
	if _, err := Generate(NewRandom(1), 3, -1); !errors.Is(err, ErrTooManyCandles) {
		t.Errorf("negative candles: err = %v, want ErrTooManyCandles", err)
	}
}

func TestGenerateSameSeedSameLayout(t *testing.T) {
	a, _ := Generate(NewRandom(7), 8, 10)
	b, _ := Generate(NewRandom(7), 8, 10)
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("layouts differ at (%d,%d)", r, c)
			}
		}
	}
}
