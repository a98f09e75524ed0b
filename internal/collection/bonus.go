package collection

import (
	"math"
	"slices"

	"svw.info/birthdayos/internal/infrastructure/storage"
)

// AddBonusPoints credits amount once per reason. Repeated calls with a
// reason that already paid out are ignored, as are NaN and infinite amounts,
// which leave the reason unspent. It reports whether points were awarded.
func (s *Store) AddBonusPoints(amount float64, reason string) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		s.log.Warn("rejecting non-finite bonus amount", "reason", reason, "amount", amount)
		return false
	}
	if slices.Contains(s.awardedReasons, reason) {
		s.log.Debug("bonus already awarded", "reason", reason)
		return false
	}
	if amount < 0 {
		amount = 0
	}
	s.bonusPoints += amount
	s.awardedReasons = append(s.awardedReasons, reason)
	storage.SetJSON(s.kv, KeyBonusPoints, s.bonusPoints, s.log)
	storage.SetJSON(s.kv, KeyAwardedReasons, s.awardedReasons, s.log)
	s.log.Debug("bonus awarded", "reason", reason, "amount", amount, "total", s.bonusPoints)
	return true
}

// HasAwarded reports whether reason already paid out.
func (s *Store) HasAwarded(reason string) bool {
	return slices.Contains(s.awardedReasons, reason)
}
