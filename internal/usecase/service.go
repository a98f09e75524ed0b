package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"

	"svw.info/birthdayos/internal/chime"
	"svw.info/birthdayos/internal/collection"
	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/game"
	"svw.info/birthdayos/internal/ports"
)

// Bonus reasons and amounts paid by the service itself.
const (
	ReasonMinigameWon = "minigame-won"
	MinigameWonBonus  = 50
	InspectBonus      = 10
)

var (
	errNotConfigured = errors.New("usecase dependency not configured")

	ErrGameNotFound  = errors.New("usecase: game not found")
	ErrUnknownCharm  = errors.New("usecase: unknown charm")
	ErrInvalidCharm  = errors.New("usecase: invalid charm")
	ErrCharmNotOwned = errors.New("usecase: charm not collected")
	ErrInvalidAmount = errors.New("usecase: bonus amount must be a finite number")
)

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Size    int
	Candles int
	Random  ports.Random
	Hinter  ports.Hinter
	Chime   ports.Chime
	Logger  *slog.Logger
	// NewID names new games; defaults to random UUIDs.
	NewID func() string
}

// Service drives the candle game and the collection store on behalf of the
// hosts. All methods are safe for concurrent use.
type Service struct {
	mu sync.Mutex

	Store     *collection.Store
	Validator ports.CharmValidator
	Hinter    ports.Hinter
	Chime     ports.Chime

	rng     ports.Random
	size    int
	candles int
	newID   func() string
	log     *slog.Logger
	games   map[string]*game.Game
}

func NewService(st *collection.Store, v ports.CharmValidator, opts Options) *Service {
	u := &Service{
		Store:     st,
		Validator: v,
		Hinter:    opts.Hinter,
		Chime:     opts.Chime,
		rng:       opts.Random,
		size:      opts.Size,
		candles:   opts.Candles,
		newID:     opts.NewID,
		log:       opts.Logger,
		games:     map[string]*game.Game{},
	}
	if u.Chime == nil {
		u.Chime = chime.Silent{}
	}
	if u.size == 0 {
		u.size = game.DefaultSize
	}
	if u.candles == 0 {
		u.candles = game.DefaultCandles
	}
	if u.newID == nil {
		u.newID = uuid.NewString
	}
	if u.log == nil {
		u.log = slog.Default()
	}
	return u
}

// ---- Candle game ----

// NewGame starts a game and returns its id. Zero size or candles use the
// configured defaults.
func (u *Service) NewGame(ctx context.Context, size, candles int) (string, domain.GameSnapshot, error) {
	if u.rng == nil {
		return "", domain.GameSnapshot{}, errNotConfigured
	}
	size, candles = u.dims(size, candles)
	u.mu.Lock()
	defer u.mu.Unlock()
	g, err := game.New(u.rng, size, candles)
	if err != nil {
		return "", domain.GameSnapshot{}, err
	}
	id := u.newID()
	u.games[id] = g
	u.log.Debug("game started", "id", id, "size", size, "candles", candles)
	return id, u.snapshot(id, g), nil
}

// Game returns the current view of a game.
func (u *Service) Game(ctx context.Context, id string) (domain.GameSnapshot, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	g, err := u.game(id)
	if err != nil {
		return domain.GameSnapshot{}, err
	}
	return u.snapshot(id, g), nil
}

// Reveal opens a tile. Ending the game completes the game-played milestone,
// and a win pays the minigame bonus once.
func (u *Service) Reveal(ctx context.Context, id string, row, col int) (domain.GameSnapshot, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	g, err := u.game(id)
	if err != nil {
		return domain.GameSnapshot{}, err
	}
	before := g.Status()
	if _, err := g.Reveal(row, col); err != nil {
		return domain.GameSnapshot{}, err
	}
	if before == domain.Playing && g.Status().Terminal() {
		u.gameEnded(id, g.Status())
	}
	return u.snapshot(id, g), nil
}

// ToggleFlag flags or unflags a hidden tile.
func (u *Service) ToggleFlag(ctx context.Context, id string, row, col int) (domain.GameSnapshot, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	g, err := u.game(id)
	if err != nil {
		return domain.GameSnapshot{}, err
	}
	if _, err := g.ToggleFlag(row, col); err != nil {
		return domain.GameSnapshot{}, err
	}
	return u.snapshot(id, g), nil
}

// Restart replaces the grid of an existing game.
func (u *Service) Restart(ctx context.Context, id string, size, candles int) (domain.GameSnapshot, error) {
	size, candles = u.dims(size, candles)
	u.mu.Lock()
	defer u.mu.Unlock()
	g, err := u.game(id)
	if err != nil {
		return domain.GameSnapshot{}, err
	}
	if err := g.Restart(size, candles); err != nil {
		return domain.GameSnapshot{}, err
	}
	return u.snapshot(id, g), nil
}

// Hint suggests a provably safe tile.
func (u *Service) Hint(ctx context.Context, id string) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	u.mu.Lock()
	g, err := u.game(id)
	var s domain.GameSnapshot
	if err == nil {
		s = u.snapshot(id, g)
	}
	u.mu.Unlock()
	if err != nil {
		return domain.Hint{}, false, err
	}
	return u.Hinter.Hint(ctx, s)
}

// EndGame forgets a game.
func (u *Service) EndGame(ctx context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, err := u.game(id); err != nil {
		return err
	}
	delete(u.games, id)
	return nil
}

func (u *Service) gameEnded(id string, st domain.GameStatus) {
	u.log.Info("game over", "id", id, "status", st.String())
	if u.Store != nil {
		if err := u.Store.CompleteMilestone(domain.GamePlayed); err != nil {
			u.log.Warn("complete milestone", "err", err)
		}
		if st == domain.Won {
			u.Store.AddBonusPoints(MinigameWonBonus, ReasonMinigameWon)
		}
	}
	if st == domain.Won {
		u.Chime.Play(chime.CueWon)
	} else {
		u.Chime.Play(chime.CueLost)
	}
}

func (u *Service) game(id string) (*game.Game, error) {
	g, ok := u.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}
	return g, nil
}

func (u *Service) snapshot(id string, g *game.Game) domain.GameSnapshot {
	s := g.Snapshot()
	s.ID = id
	return s
}

func (u *Service) dims(size, candles int) (int, int) {
	if size == 0 {
		size = u.size
	}
	if candles == 0 {
		candles = u.candles
	}
	return size, candles
}

// ---- Collection ----

// Summary is the derived view of the collection store.
type Summary struct {
	Charms          []domain.Charm     `json:"charms"`
	BonusPoints     float64            `json:"bonusPoints"`
	TotalPoints     float64            `json:"totalPoints"`
	Redeemed        bool               `json:"redeemed"`
	NewlyUnlocked   *domain.Charm      `json:"newlyUnlocked,omitempty"`
	Milestones      []domain.Milestone `json:"milestones"`
	ProgressPercent int                `json:"progressPercent"`
}

func (u *Service) Summary(ctx context.Context) (Summary, error) {
	if u.Store == nil {
		return Summary{}, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	s := Summary{
		Charms:          u.Store.Charms(),
		BonusPoints:     u.Store.BonusPoints(),
		TotalPoints:     u.Store.TotalPoints(),
		Redeemed:        u.Store.IsRedeemed(),
		Milestones:      u.Store.Milestones(),
		ProgressPercent: u.Store.ProgressPercent(),
	}
	if c, ok := u.Store.NewlyUnlockedCharm(); ok {
		s.NewlyUnlocked = &c
	}
	return s, nil
}

// AddCharm validates c like a stored record and adds it to the collection.
// Collecting a new charm completes the charm-collected milestone.
func (u *Service) AddCharm(ctx context.Context, c domain.Charm) (bool, error) {
	if u.Store == nil || u.Validator == nil {
		return false, errNotConfigured
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return false, fmt.Errorf("usecase: encode charm: %w", err)
	}
	if res := u.Validator.ValidateCharm(raw); !res.OK() {
		return false, fmt.Errorf("%w: %s", ErrInvalidCharm, res.Diagnostic())
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.addCharm(c), nil
}

func (u *Service) addCharm(c domain.Charm) bool {
	if !u.Store.AddCharm(c) {
		return false
	}
	if err := u.Store.CompleteMilestone(domain.CharmCollected); err != nil {
		u.log.Warn("complete milestone", "err", err)
	}
	u.Chime.Play(chime.CueUnlock)
	return true
}

// SnapPhoto completes the photo milestone and unlocks the catalog charm id.
func (u *Service) SnapPhoto(ctx context.Context, charmID string) (bool, error) {
	if u.Store == nil {
		return false, errNotConfigured
	}
	c, ok := CatalogCharm(charmID)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownCharm, charmID)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.Store.CompleteMilestone(domain.PhotoSnapped); err != nil {
		return false, err
	}
	return u.addCharm(c), nil
}

// InspectCharm pays the inspection bonus for a collected charm, once.
func (u *Service) InspectCharm(ctx context.Context, id string) (bool, error) {
	if u.Store == nil {
		return false, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.Store.Charm(id); !ok {
		return false, fmt.Errorf("%w: %q", ErrCharmNotOwned, id)
	}
	return u.Store.AddBonusPoints(InspectBonus, "inspect-"+id), nil
}

func (u *Service) RemoveCharm(ctx context.Context, id string) (bool, error) {
	if u.Store == nil {
		return false, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.Store.RemoveCharm(id), nil
}

func (u *Service) ClearCharms(ctx context.Context) error {
	return u.withStore(func(s *collection.Store) error { s.ClearCharms(); return nil })
}

func (u *Service) DismissUnlock(ctx context.Context) error {
	return u.withStore(func(s *collection.Store) error { s.DismissUnlockModal(); return nil })
}

// AwardBonus credits amount once per reason and reports whether it paid out.
func (u *Service) AwardBonus(ctx context.Context, amount float64, reason string) (bool, error) {
	if u.Store == nil {
		return false, errNotConfigured
	}
	if reason == "" {
		return false, errors.New("usecase: bonus reason is required")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.Store.AddBonusPoints(amount, reason), nil
}

// HasAwarded reports whether reason already paid out bonus points.
func (u *Service) HasAwarded(ctx context.Context, reason string) (bool, error) {
	if u.Store == nil {
		return false, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.Store.HasAwarded(reason), nil
}

func (u *Service) SetRedeemed(ctx context.Context, v bool) error {
	return u.withStore(func(s *collection.Store) error { s.SetRedeemed(v); return nil })
}

func (u *Service) CompleteMilestone(ctx context.Context, id domain.MilestoneID) error {
	return u.withStore(func(s *collection.Store) error { return s.CompleteMilestone(id) })
}

func (u *Service) AnswerCall(ctx context.Context) error {
	return u.CompleteMilestone(ctx, domain.CallAnswered)
}

func (u *Service) RevealGift(ctx context.Context) error {
	return u.CompleteMilestone(ctx, domain.GiftRevealed)
}

func (u *Service) BurnCD(ctx context.Context) error {
	return u.CompleteMilestone(ctx, domain.CDBurned)
}

func (u *Service) ResetProgress(ctx context.Context) error {
	return u.withStore(func(s *collection.Store) error { s.ResetProgress(); return nil })
}

func (u *Service) ResetAll(ctx context.Context) error {
	return u.withStore(func(s *collection.Store) error { s.ResetAll(); return nil })
}

func (u *Service) withStore(fn func(*collection.Store) error) error {
	if u.Store == nil {
		return errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(u.Store)
}
