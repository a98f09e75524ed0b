// Package tui plays the candle game in a terminal through tcell.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/usecase"
)

const (
	gridTop  = 2
	gridLeft = 2
	cellW    = 2
)

var (
	styleDefault  = tcell.StyleDefault
	styleHidden   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlag     = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleCandle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleHint     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	numberPalette = []tcell.Color{
		tcell.ColorBlue, tcell.ColorGreen, tcell.ColorRed, tcell.ColorNavy,
		tcell.ColorMaroon, tcell.ColorTeal, tcell.ColorWhite, tcell.ColorGray,
	}
)

// App is one terminal session bound to a single game.
type App struct {
	screen tcell.Screen
	uc     *usecase.Service
	log    *slog.Logger

	id     string
	snap   domain.GameSnapshot
	cursor domain.CellCoord
	hint   *domain.CellCoord
	msg    string
}

func New(screen tcell.Screen, uc *usecase.Service, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{screen: screen, uc: uc, log: logger}
}

// Start creates the game shown by the app.
func (a *App) Start(ctx context.Context, size, candles int) error {
	id, snap, err := a.uc.NewGame(ctx, size, candles)
	if err != nil {
		return err
	}
	a.id, a.snap = id, snap
	a.cursor = domain.CellCoord{Row: snap.Size / 2, Col: snap.Size / 2}
	a.msg = ""
	return nil
}

func (a *App) Snapshot() domain.GameSnapshot { return a.snap }
func (a *App) Cursor() domain.CellCoord      { return a.cursor }
func (a *App) Message() string               { return a.msg }

// Run polls the screen until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ctx, ev) {
				return nil
			}
			a.Draw()
		}
	}
}

// HandleEvent applies one input event and reports whether to keep running.
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ctx, ev)
	}
	return true
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.move(-1, 0)
	case tcell.KeyDown:
		a.move(1, 0)
	case tcell.KeyLeft:
		a.move(0, -1)
	case tcell.KeyRight:
		a.move(0, 1)
	case tcell.KeyEnter:
		a.reveal(ctx)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			a.move(-1, 0)
		case 'j':
			a.move(1, 0)
		case 'h':
			a.move(0, -1)
		case 'l':
			a.move(0, 1)
		case ' ':
			a.reveal(ctx)
		case 'f':
			a.flag(ctx)
		case 'r':
			a.restart(ctx)
		case '?':
			a.suggest(ctx)
		}
	}
	return true
}

func (a *App) move(dr, dc int) {
	n := a.snap.Size
	if n == 0 {
		return
	}
	a.cursor.Row = min(max(a.cursor.Row+dr, 0), n-1)
	a.cursor.Col = min(max(a.cursor.Col+dc, 0), n-1)
}

func (a *App) reveal(ctx context.Context) {
	paidBefore, _ := a.uc.HasAwarded(ctx, usecase.ReasonMinigameWon)
	a.apply(a.uc.Reveal(ctx, a.id, a.cursor.Row, a.cursor.Col))
	switch a.snap.Status {
	case domain.Won:
		paidNow, _ := a.uc.HasAwarded(ctx, usecase.ReasonMinigameWon)
		if !paidBefore && paidNow {
			a.msg = fmt.Sprintf("All candles found! +%d bonus. Press r to play again.", usecase.MinigameWonBonus)
		} else {
			a.msg = "All candles found! Press r to play again."
		}
	case domain.Lost:
		a.msg = "You lit a candle. Press r to try again."
	}
}

func (a *App) flag(ctx context.Context) {
	a.apply(a.uc.ToggleFlag(ctx, a.id, a.cursor.Row, a.cursor.Col))
}

func (a *App) restart(ctx context.Context) {
	a.apply(a.uc.Restart(ctx, a.id, 0, 0))
	a.msg = "New grid."
}

func (a *App) suggest(ctx context.Context) {
	h, ok, err := a.uc.Hint(ctx, a.id)
	switch {
	case err != nil:
		a.msg = err.Error()
	case !ok:
		a.msg = "No safe tile can be deduced yet."
	default:
		a.hint = &h.Cell
		a.cursor = h.Cell
		a.msg = h.Message
	}
}

func (a *App) apply(snap domain.GameSnapshot, err error) {
	if err != nil {
		a.log.Warn("tui action", "err", err)
		a.msg = err.Error()
		return
	}
	a.snap = snap
	a.hint = nil
	a.msg = ""
}

// Draw renders the grid and the status line.
func (a *App) Draw() {
	s := a.screen
	s.Clear()
	drawText(s, 0, 0, styleTitle, "BirthdayOS candle game")

	for r, row := range a.snap.Tiles {
		for c, t := range row {
			ch, st := glyph(t, a.snap.Status)
			if a.hint != nil && a.hint.Row == r && a.hint.Col == c && t.State == domain.Hidden {
				st = styleHint
			}
			if a.cursor.Row == r && a.cursor.Col == c {
				st = st.Reverse(true)
			}
			s.SetContent(gridLeft+c*cellW, gridTop+r, ch, nil, st)
		}
	}

	y := gridTop + a.snap.Size + 1
	drawText(s, 0, y, styleDefault, StatusLine(a.snap))
	if a.msg != "" {
		drawText(s, 0, y+1, styleDefault, a.msg)
	}
	drawText(s, 0, y+3, styleHidden, "arrows/hjkl move  space reveal  f flag  r restart  ? hint  q quit")
	s.Show()
}

// StatusLine summarises a game for the footer.
func StatusLine(s domain.GameSnapshot) string {
	return fmt.Sprintf("%s  candles %d  flags %d  remaining %d",
		s.StatusText, s.Candles, s.FlagsPlaced, s.RemainingCandles)
}

func glyph(t domain.TileView, st domain.GameStatus) (rune, tcell.Style) {
	switch t.State {
	case domain.Flagged:
		return 'F', styleFlag
	case domain.Revealed:
		if t.IsCandle {
			return '*', styleCandle
		}
		if t.AdjacentCandles == 0 {
			return ' ', styleDefault
		}
		return rune('0' + t.AdjacentCandles),
			styleDefault.Foreground(numberPalette[(t.AdjacentCandles-1)%len(numberPalette)])
	}
	if st == domain.Lost && t.IsCandle {
		return '*', styleCandle
	}
	return '.', styleHidden
}

func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, st)
	}
}
