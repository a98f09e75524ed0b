package collection

import (
	"encoding/json"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/infrastructure/storage"
)

// AddCharm appends c unless a charm with the same id is already collected,
// and marks it as newly unlocked. It reports whether c was added.
func (s *Store) AddCharm(c domain.Charm) bool {
	if s.indexOf(c.ID) >= 0 {
		return false
	}
	s.charms = append(s.charms, c)
	added := c
	s.newlyUnlocked = &added
	s.persistCharms()
	s.log.Debug("charm added", "id", c.ID, "points", c.Points)
	return true
}

// RemoveCharm drops the charm with the given id, if present.
func (s *Store) RemoveCharm(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.charms = append(s.charms[:i:i], s.charms[i+1:]...)
	s.persistCharms()
	return true
}

// ClearCharms empties the collection. The bonus ledger, awarded reasons and
// redemption flag are untouched.
func (s *Store) ClearCharms() {
	s.charms = []domain.Charm{}
	s.persistCharms()
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.charms {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistCharms() {
	storage.SetJSON(s.kv, KeyCharms, s.charms, s.log)
}

// loadCharms rehydrates the collection, dropping every record that fails
// validation. Malformed top-level data falls back to an empty collection.
func (s *Store) loadCharms() []domain.Charm {
	data, ok := storage.GetRaw(s.kv, KeyCharms, s.log)
	if !ok {
		return []domain.Charm{}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil || raws == nil {
		s.log.Warn("stored charms are not an array, using empty collection", "err", err)
		return []domain.Charm{}
	}

	out := make([]domain.Charm, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for i, raw := range raws {
		res := s.validator.ValidateCharm(raw)
		if !res.OK() {
			s.log.Warn("dropping invalid stored charm", "index", i, "problems", res.Diagnostic())
			continue
		}
		c := res.Value()
		if seen[c.ID] {
			s.log.Warn("dropping duplicate stored charm", "index", i, "id", c.ID)
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	if len(out) == 0 && len(raws) > 0 {
		s.log.Warn("no stored charm passed validation, using empty collection", "records", len(raws))
	}
	return out
}
