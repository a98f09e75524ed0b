package game

import (
	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/generator"
)

// Reveal uncovers the tile at (row, col). Revealing a candle loses the game
// and exposes every candle; revealing a zero-adjacency tile cascades through
// its connected zero region. It reports whether any tile changed.
func (g *Game) Reveal(row, col int) (bool, error) {
	if !g.in(row, col) {
		return false, g.boundsErr(row, col)
	}
	if g.status != domain.Playing {
		return false, nil
	}
	t := &g.grid[row][col]
	if t.State != domain.Hidden {
		return false, nil
	}

	if t.IsCandle {
		t.State = domain.Revealed
		g.status = domain.Lost
		g.revealCandles()
		return true, nil
	}

	g.flood(row, col)
	if g.allSafeRevealed() {
		g.status = domain.Won
	}
	return true, nil
}

// flood is a breadth-first worklist fill; it never recurses.
func (g *Game) flood(row, col int) {
	visited := make([]bool, g.size*g.size)
	queue := []domain.CellCoord{{Row: row, Col: col}}
	visited[row*g.size+col] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		t := &g.grid[p.Row][p.Col]
		if t.IsCandle || t.State != domain.Hidden {
			continue
		}
		t.State = domain.Revealed
		if t.AdjacentCandles != 0 {
			continue
		}
		generator.Around(g.size, p.Row, p.Col, func(nr, nc int) {
			idx := nr*g.size + nc
			if visited[idx] {
				return
			}
			visited[idx] = true
			queue = append(queue, domain.CellCoord{Row: nr, Col: nc})
		})
	}
}

func (g *Game) revealCandles() {
	for r := range g.grid {
		for c := range g.grid[r] {
			if g.grid[r][c].IsCandle {
				g.grid[r][c].State = domain.Revealed
			}
		}
	}
}

func (g *Game) allSafeRevealed() bool {
	for r := range g.grid {
		for _, t := range g.grid[r] {
			if !t.IsCandle && t.State != domain.Revealed {
				return false
			}
		}
	}
	return true
}
