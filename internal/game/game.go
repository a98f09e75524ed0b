// Package game implements the candle grid: a minesweeper variant with
// reveal, flag, breadth-first cascade and win/loss detection.
package game

import (
	"errors"
	"fmt"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/generator"
	"svw.info/birthdayos/internal/ports"
)

// ErrOutOfBounds is returned for coordinates outside the grid.
var ErrOutOfBounds = errors.New("game: coordinates out of bounds")

const (
	DefaultSize    = 8
	DefaultCandles = 10
)

// Game owns one grid instance and its status. It is not safe for concurrent use.
type Game struct {
	rng     ports.Random
	size    int
	candles int
	grid    [][]domain.Tile
	status  domain.GameStatus
}

// New generates a fresh grid using rng.
func New(rng ports.Random, size, candles int) (*Game, error) {
	g := &Game{rng: rng}
	if err := g.Restart(size, candles); err != nil {
		return nil, err
	}
	return g, nil
}

// Restart replaces the grid with a newly generated one and resets the status.
// On error the current grid is kept.
func (g *Game) Restart(size, candles int) error {
	grid, err := generator.Generate(g.rng, size, candles)
	if err != nil {
		return fmt.Errorf("game: restart: %w", err)
	}
	g.grid = grid
	g.size = size
	g.candles = candles
	g.status = domain.Playing
	return nil
}

func (g *Game) Status() domain.GameStatus { return g.status }
func (g *Game) Size() int                 { return g.size }
func (g *Game) Candles() int              { return g.candles }

// Tile returns a copy of the tile at (row, col).
func (g *Game) Tile(row, col int) (domain.Tile, error) {
	if !g.in(row, col) {
		return domain.Tile{}, g.boundsErr(row, col)
	}
	return g.grid[row][col], nil
}

// Grid returns a deep copy of the tiles.
func (g *Game) Grid() [][]domain.Tile {
	out := make([][]domain.Tile, len(g.grid))
	for r := range g.grid {
		out[r] = append([]domain.Tile(nil), g.grid[r]...)
	}
	return out
}

// FlagsPlaced counts tiles currently flagged.
func (g *Game) FlagsPlaced() int {
	n := 0
	for r := range g.grid {
		for c := range g.grid[r] {
			if g.grid[r][c].State == domain.Flagged {
				n++
			}
		}
	}
	return n
}

// RemainingCandles is the candle count minus placed flags; it may go negative.
func (g *Game) RemainingCandles() int { return g.candles - g.FlagsPlaced() }

// ToggleFlag flips a hidden tile to flagged and back. Revealed tiles and
// finished games are left untouched.
func (g *Game) ToggleFlag(row, col int) (bool, error) {
	if !g.in(row, col) {
		return false, g.boundsErr(row, col)
	}
	if g.status != domain.Playing {
		return false, nil
	}
	t := &g.grid[row][col]
	switch t.State {
	case domain.Hidden:
		t.State = domain.Flagged
	case domain.Flagged:
		t.State = domain.Hidden
	default:
		return false, nil
	}
	return true, nil
}

// Snapshot renders the game for hosts. While playing, hidden and flagged
// tiles do not disclose whether they hold a candle.
func (g *Game) Snapshot() domain.GameSnapshot {
	s := domain.GameSnapshot{
		Size:             g.size,
		Candles:          g.candles,
		Status:           g.status,
		StatusText:       g.status.String(),
		FlagsPlaced:      g.FlagsPlaced(),
		RemainingCandles: g.RemainingCandles(),
		Tiles:            make([][]domain.TileView, g.size),
	}
	for r := range g.grid {
		s.Tiles[r] = make([]domain.TileView, g.size)
		for c, t := range g.grid[r] {
			v := domain.TileView{State: t.State}
			if t.State == domain.Revealed || g.status.Terminal() {
				v.IsCandle = t.IsCandle
				v.AdjacentCandles = t.AdjacentCandles
			}
			s.Tiles[r][c] = v
		}
	}
	return s
}

func (g *Game) in(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.size && col < g.size
}

func (g *Game) boundsErr(row, col int) error {
	return fmt.Errorf("%w: (%d,%d) on a %dx%d grid", ErrOutOfBounds, row, col, g.size, g.size)
}
