package hint

import (
	"context"
	"testing"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/game"
	"svw.info/birthdayos/internal/generator"
)

// seq places candles at the listed linear positions, in order.
type seq struct {
	pos []int
	i   int
}

func (s *seq) Intn(n int) int {
	v := s.pos[s.i%len(s.pos)]
	s.i++
	return v % n
}

func TestHintFromCornerCandle(t *testing.T) {
	// Candle at (0,0) of a 3x3 grid, with only the three tiles touching it
	// opened.
	g, err := game.New(&seq{pos: []int{0}}, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	g.Reveal(0, 1)
	g.Reveal(1, 0)
	g.Reveal(1, 1)

	// every opened number still has several hidden neighbors, so nothing is
	// provable yet
	h := NewSingles()
	if _, ok, _ := h.Hint(context.Background(), g.Snapshot()); ok {
		t.Fatal("no tile should be provably safe yet")
	}
}

func TestHintAfterForcedCandle(t *testing.T) {
	// Candles at (0,0) and (0,1). Opening (2,0) floods the bottom two rows;
	// the 2 at (1,0) forces both candles and the 2 at (1,1) then proves
	// (0,2) safe.
	g, err := game.New(&seq{pos: []int{0, 1}}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	g.Reveal(2, 0)
	h := NewSingles()
	hint, ok, err := h.Hint(context.Background(), g.Snapshot())
	if err != nil || !ok {
		t.Fatalf("expected a hint, got ok=%v err=%v", ok, err)
	}
	if hint.Cell != (domain.CellCoord{Row: 0, Col: 2}) {
		t.Fatalf("hint = %v, want (0,2)", hint.Cell)
	}
}

func TestHintNeverSuggestsCandle(t *testing.T) {
	h := NewSingles()
	for seed := int64(1); seed <= 40; seed++ {
		g, err := game.New(generator.NewRandom(seed), 6, 6)
		if err != nil {
			t.Fatal(err)
		}
		// open a safe starting tile, then follow hints until they run out
		grid := g.Grid()
	open:
		for r := range grid {
			for c := range grid[r] {
				if !grid[r][c].IsCandle {
					g.Reveal(r, c)
					break open
				}
			}
		}
		for i := 0; i < 36 && g.Status() == domain.Playing; i++ {
			hint, ok, err := h.Hint(context.Background(), g.Snapshot())
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				break
			}
			tile, _ := g.Tile(hint.Cell.Row, hint.Cell.Col)
			if tile.IsCandle {
				t.Fatalf("seed %d: hint %v is a candle", seed, hint.Cell)
			}
			g.Reveal(hint.Cell.Row, hint.Cell.Col)
		}
		if g.Status() == domain.Lost {
			t.Fatalf("seed %d: following hints lost the game", seed)
		}
	}
}

func TestHintFinishedGame(t *testing.T) {
	g, _ := game.New(&seq{pos: []int{0}}, 2, 1)
	g.Reveal(0, 0)
	if _, ok, _ := NewSingles().Hint(context.Background(), g.Snapshot()); ok {
		t.Fatal("finished games get no hints")
	}
}
