// Package collection is the persisted store for charms, bonus points, the
// redemption flag and session milestones. Every mutation is written through
// to the key-value collaborator; in-memory state stays authoritative when a
// write fails.
package collection

import (
	"errors"
	"log/slog"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/infrastructure/storage"
	"svw.info/birthdayos/internal/ports"
	"svw.info/birthdayos/internal/validator"
)

// Persisted record keys. Each concern is an independent record.
const (
	KeyCharms         = "charms"
	KeyBonusPoints    = "bonus-points"
	KeyRedeemed       = "redeemed"
	KeyAwardedReasons = "awarded-bonus-reasons"
	KeyProgress       = "session-progress"
)

// ErrUnknownMilestone is returned for ids outside the fixed milestone list.
var ErrUnknownMilestone = errors.New("collection: unknown milestone")

// Store is the single authoritative state container. It is not safe for
// concurrent use; hosts serialize access.
type Store struct {
	kv        ports.KV
	validator ports.CharmValidator
	log       *slog.Logger

	charms         []domain.Charm
	bonusPoints    float64
	awardedReasons []string
	redeemed       bool
	milestones     []domain.Milestone

	newlyUnlocked *domain.Charm
}

// New builds a store and rehydrates it from kv.
func New(kv ports.KV, v ports.CharmValidator, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if v == nil {
		v = validator.New()
	}
	s := &Store{kv: kv, validator: v, log: logger}
	s.load()
	return s
}

func (s *Store) load() {
	s.charms = s.loadCharms()
	s.bonusPoints = storage.GetJSON(s.kv, KeyBonusPoints, 0.0, s.log)
	if s.bonusPoints < 0 {
		s.log.Warn("negative bonus points in storage, resetting", "value", s.bonusPoints)
		s.bonusPoints = 0
	}
	s.awardedReasons = storage.GetJSON(s.kv, KeyAwardedReasons, []string{}, s.log)
	s.redeemed = storage.GetJSON(s.kv, KeyRedeemed, false, s.log)
	s.milestones = s.loadMilestones()
}

// Charms returns a copy of the collection in unlock order.
func (s *Store) Charms() []domain.Charm {
	return append([]domain.Charm(nil), s.charms...)
}

// Charm looks up a collected charm by id.
func (s *Store) Charm(id string) (domain.Charm, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Charm{}, false
	}
	return s.charms[i], true
}

func (s *Store) BonusPoints() float64 { return s.bonusPoints }
func (s *Store) IsRedeemed() bool     { return s.redeemed }

// TotalPoints is the sum of all charm points plus the bonus ledger.
func (s *Store) TotalPoints() float64 {
	total := s.bonusPoints
	for _, c := range s.charms {
		total += c.Points
	}
	return total
}

// NewlyUnlockedCharm returns the charm awaiting its unlock notification.
func (s *Store) NewlyUnlockedCharm() (domain.Charm, bool) {
	if s.newlyUnlocked == nil {
		return domain.Charm{}, false
	}
	return *s.newlyUnlocked, true
}

// AwardedReasons returns the reasons that already paid out bonus points.
func (s *Store) AwardedReasons() []string {
	return append([]string(nil), s.awardedReasons...)
}

// SetRedeemed sets and persists the redemption flag.
func (s *Store) SetRedeemed(v bool) {
	s.redeemed = v
	storage.SetJSON(s.kv, KeyRedeemed, v, s.log)
}

// DismissUnlockModal clears the transient unlock marker.
func (s *Store) DismissUnlockModal() { s.newlyUnlocked = nil }

// ResetAll wipes every record, including the bonus ledger and the
// redemption flag, and removes them from storage.
func (s *Store) ResetAll() {
	s.charms = []domain.Charm{}
	s.bonusPoints = 0
	s.awardedReasons = []string{}
	s.redeemed = false
	s.milestones = domain.DefaultMilestones()
	s.newlyUnlocked = nil
	for _, k := range []string{KeyCharms, KeyBonusPoints, KeyAwardedReasons, KeyRedeemed, KeyProgress} {
		storage.RemoveKey(s.kv, k, s.log)
	}
	s.log.Info("collection reset")
}
