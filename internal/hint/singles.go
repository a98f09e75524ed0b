package hint

import (
	"context"
	"fmt"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/generator"
)

// Singles suggests tiles that single-number deduction proves safe. Player
// flags are ignored: only revealed numbers count as evidence.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the first provably safe hidden tile, scanning row by row.
func (h *Singles) Hint(ctx context.Context, s domain.GameSnapshot) (domain.Hint, bool, error) {
	if s.Status != domain.Playing {
		return domain.Hint{}, false, nil
	}
	candles := knownCandles(s)
	if err := ctx.Err(); err != nil {
		return domain.Hint{}, false, err
	}
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			t := s.Tiles[r][c]
			if t.State != domain.Revealed || t.AdjacentCandles == 0 {
				continue
			}
			known := 0
			var unknown []domain.CellCoord
			generator.Around(s.Size, r, c, func(nr, nc int) {
				switch {
				case candles[nr*s.Size+nc]:
					known++
				case s.Tiles[nr][nc].State == domain.Hidden:
					unknown = append(unknown, domain.CellCoord{Row: nr, Col: nc})
				}
			})
			if known == t.AdjacentCandles && len(unknown) > 0 {
				cell := unknown[0]
				return domain.Hint{
					Message: fmt.Sprintf("Safe: the %d at (%d,%d) already touches all its candles", t.AdjacentCandles, r, c),
					Cell:    cell,
				}, true, nil
			}
		}
	}
	return domain.Hint{}, false, nil
}

// knownCandles marks tiles that must be candles because a revealed number has
// exactly as many unrevealed neighbors as its count.
func knownCandles(s domain.GameSnapshot) []bool {
	out := make([]bool, s.Size*s.Size)
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			t := s.Tiles[r][c]
			if t.State != domain.Revealed || t.AdjacentCandles == 0 {
				continue
			}
			var hidden []int
			generator.Around(s.Size, r, c, func(nr, nc int) {
				if s.Tiles[nr][nc].State != domain.Revealed {
					hidden = append(hidden, nr*s.Size+nc)
				}
			})
			if len(hidden) == t.AdjacentCandles {
				for _, i := range hidden {
					out[i] = true
				}
			}
		}
	}
	return out
}
