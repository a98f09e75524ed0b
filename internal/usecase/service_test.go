package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"svw.info/birthdayos/internal/chime"
	"svw.info/birthdayos/internal/collection"
	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/game"
	"svw.info/birthdayos/internal/hint"
	"svw.info/birthdayos/internal/infrastructure/storage"
	"svw.info/birthdayos/internal/validator"
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

func newTestService(t *testing.T, pos ...int) (*Service, *chime.Recorder) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validator.New()
	st := collection.New(storage.NewMemory(), v, log)
	rec := &chime.Recorder{}
	n := 0
	u := NewService(st, v, Options{
		Size:    3,
		Candles: 1,
		Random:  &seq{pos: pos},
		Hinter:  hint.NewSingles(),
		Chime:   rec,
		Logger:  log,
		NewID: func() string {
			n++
			return "g" + string(rune('0'+n))
		},
	})
	return u, rec
}

func TestWinningGameAwardsOnce(t *testing.T) {
	ctx := context.Background()
	u, rec := newTestService(t, 4)
	id, snap, err := u.NewGame(ctx, 0, 0)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if id != "g1" || snap.Size != 3 || snap.Candles != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r == 1 && c == 1 {
				continue
			}
			if snap, err = u.Reveal(ctx, id, r, c); err != nil {
				t.Fatalf("Reveal: %v", err)
			}
		}
	}
	if snap.Status != domain.Won {
		t.Fatalf("status = %v, want won", snap.Status)
	}
	sum, _ := u.Summary(ctx)
	if sum.BonusPoints != MinigameWonBonus {
		t.Fatalf("bonus = %v, want %d", sum.BonusPoints, MinigameWonBonus)
	}
	if !u.Store.MilestoneDone(domain.GamePlayed) {
		t.Fatal("game-played milestone not completed")
	}
	if len(rec.Cues) != 1 || rec.Cues[0] != chime.CueWon {
		t.Fatalf("cues = %v", rec.Cues)
	}

	// a second win does not pay again
	if _, err := u.Restart(ctx, id, 0, 0); err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r != 1 || c != 1 {
				u.Reveal(ctx, id, r, c)
			}
		}
	}
	if sum, _ := u.Summary(ctx); sum.BonusPoints != MinigameWonBonus {
		t.Fatalf("bonus after second win = %v", sum.BonusPoints)
	}
}

func TestLosingGame(t *testing.T) {
	ctx := context.Background()
	u, rec := newTestService(t, 0)
	id, _, _ := u.NewGame(ctx, 0, 0)
	snap, err := u.Reveal(ctx, id, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Status != domain.Lost || !snap.Tiles[0][0].IsCandle {
		t.Fatalf("snapshot = %+v", snap)
	}
	if !u.Store.MilestoneDone(domain.GamePlayed) || u.Store.BonusPoints() != 0 {
		t.Fatal("a loss completes the milestone but pays nothing")
	}
	// further input after the loss does not replay the cue
	u.Reveal(ctx, id, 2, 2)
	if len(rec.Cues) != 1 || rec.Cues[0] != chime.CueLost {
		t.Fatalf("cues = %v", rec.Cues)
	}
}

func TestGameErrors(t *testing.T) {
	ctx := context.Background()
	u, _ := newTestService(t, 0)
	if _, err := u.Reveal(ctx, "missing", 0, 0); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
	id, _, _ := u.NewGame(ctx, 0, 0)
	if _, err := u.ToggleFlag(ctx, id, 5, 5); !errors.Is(err, game.ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
	if _, _, err := u.NewGame(ctx, 2, 9); err == nil {
		t.Fatal("expected error for too many candles")
	}
	if err := u.EndGame(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := u.Game(ctx, id); !errors.Is(err, ErrGameNotFound) {
		t.Fatal("ended game should be gone")
	}
}

func TestSnapPhotoAndInspect(t *testing.T) {
	ctx := context.Background()
	u, rec := newTestService(t, 0)

	if _, err := u.InspectCharm(ctx, "digi-pet"); !errors.Is(err, ErrCharmNotOwned) {
		t.Fatalf("err = %v, want ErrCharmNotOwned", err)
	}
	added, err := u.SnapPhoto(ctx, "digi-pet")
	if err != nil || !added {
		t.Fatalf("SnapPhoto = %v, %v", added, err)
	}
	if paid, _ := u.InspectCharm(ctx, "digi-pet"); !paid {
		t.Fatal("first inspection should pay")
	}
	if paid, _ := u.InspectCharm(ctx, "digi-pet"); paid {
		t.Fatal("second inspection should not pay")
	}
	sum, _ := u.Summary(ctx)
	if sum.TotalPoints != 185 {
		t.Fatalf("total = %v, want 185", sum.TotalPoints)
	}
	if sum.NewlyUnlocked == nil || sum.NewlyUnlocked.ID != "digi-pet" {
		t.Fatalf("newly unlocked = %+v", sum.NewlyUnlocked)
	}
	if sum.ProgressPercent != 33 {
		t.Fatalf("progress = %d, want 33 (photo + charm)", sum.ProgressPercent)
	}
	u.DismissUnlock(ctx)
	if sum, _ := u.Summary(ctx); sum.NewlyUnlocked != nil {
		t.Fatal("unlock marker not dismissed")
	}
	if len(rec.Cues) != 1 || rec.Cues[0] != chime.CueUnlock {
		t.Fatalf("cues = %v", rec.Cues)
	}
	if _, err := u.SnapPhoto(ctx, "unicorn"); !errors.Is(err, ErrUnknownCharm) {
		t.Fatalf("err = %v, want ErrUnknownCharm", err)
	}
}

func TestAwardBonusRejectsNonFinite(t *testing.T) {
	ctx := context.Background()
	u, _ := newTestService(t, 0)
	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := u.AwardBonus(ctx, amount, "cake"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if done, _ := u.HasAwarded(ctx, "cake"); done {
		t.Fatal("rejected amount spent the reason")
	}
	if paid, err := u.AwardBonus(ctx, 20, "cake"); err != nil || !paid {
		t.Fatalf("AwardBonus = %v, %v", paid, err)
	}
	if done, _ := u.HasAwarded(ctx, "cake"); !done {
		t.Fatal("reason not recorded")
	}
}

func TestAddCharmRejectsUnsafeColor(t *testing.T) {
	ctx := context.Background()
	u, _ := newTestService(t, 0)
	c := domain.Charm{ID: "x", Name: "X", Icon: "x", Power: "p", Points: 1, IconColor: "red;background:url(evil)"}
	if _, err := u.AddCharm(ctx, c); !errors.Is(err, ErrInvalidCharm) {
		t.Fatalf("err = %v, want ErrInvalidCharm", err)
	}
	c.IconColor = "#abc"
	if ok, err := u.AddCharm(ctx, c); err != nil || !ok {
		t.Fatalf("AddCharm = %v, %v", ok, err)
	}
	if ok, _ := u.AddCharm(ctx, c); ok {
		t.Fatal("duplicate add should report false")
	}
}

func TestCatalogIsSafe(t *testing.T) {
	v := validator.New()
	seen := map[string]bool{}
	for _, c := range Catalog() {
		if seen[c.ID] {
			t.Errorf("duplicate catalog id %s", c.ID)
		}
		seen[c.ID] = true
		raw, err := json.Marshal(c)
		if err != nil {
			t.Fatal(err)
		}
		if res := v.ValidateCharm(raw); !res.OK() {
			t.Errorf("catalog charm %s fails validation: %s", c.ID, res.Diagnostic())
		}
	}
}

func TestMilestoneShortcuts(t *testing.T) {
	ctx := context.Background()
	u, _ := newTestService(t, 0)
	u.AnswerCall(ctx)
	u.RevealGift(ctx)
	u.BurnCD(ctx)
	sum, _ := u.Summary(ctx)
	if sum.ProgressPercent != 50 {
		t.Fatalf("progress = %d, want 50", sum.ProgressPercent)
	}
	if err := u.CompleteMilestone(ctx, "nap"); !errors.Is(err, collection.ErrUnknownMilestone) {
		t.Fatalf("err = %v", err)
	}
	u.ResetProgress(ctx)
	if sum, _ := u.Summary(ctx); sum.ProgressPercent != 0 {
		t.Fatal("progress not reset")
	}
}

func TestHint(t *testing.T) {
	ctx := context.Background()
	u, _ := newTestService(t, 0)
	id, _, _ := u.NewGame(ctx, 0, 0)
	if _, ok, err := u.Hint(ctx, id); err != nil || ok {
		t.Fatalf("fresh game hint = %v, %v", ok, err)
	}
	if _, _, err := u.Hint(ctx, "nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestNotConfigured(t *testing.T) {
	u := NewService(nil, nil, Options{})
	if _, err := u.Summary(context.Background()); !errors.Is(err, errNotConfigured) {
		t.Fatalf("err = %v", err)
	}
	if _, _, err := u.NewGame(context.Background(), 0, 0); !errors.Is(err, errNotConfigured) {
		t.Fatalf("err = %v", err)
	}
}
