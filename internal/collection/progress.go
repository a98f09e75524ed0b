package collection

import (
	"fmt"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/infrastructure/storage"
)

// progressRecord is the persisted shape of the session-progress key.
type progressRecord struct {
	Milestones []domain.Milestone `json:"milestones"`
}

// Milestones returns a copy of the fixed milestone list with completion state.
func (s *Store) Milestones() []domain.Milestone {
	return append([]domain.Milestone(nil), s.milestones...)
}

// MilestoneDone reports whether id has been completed.
func (s *Store) MilestoneDone(id domain.MilestoneID) bool {
	for _, m := range s.milestones {
		if m.ID == id {
			return m.Completed
		}
	}
	return false
}

// CompleteMilestone marks id completed and persists the full list.
func (s *Store) CompleteMilestone(id domain.MilestoneID) error {
	for i := range s.milestones {
		if s.milestones[i].ID != id {
			continue
		}
		if s.milestones[i].Completed {
			return nil
		}
		s.milestones[i].Completed = true
		s.persistProgress()
		s.log.Info("milestone completed", "id", id)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownMilestone, id)
}

// ResetProgress marks every milestone uncompleted.
func (s *Store) ResetProgress() {
	s.milestones = domain.DefaultMilestones()
	s.persistProgress()
}

// ProgressPercent is the share of completed milestones, 0-100.
func (s *Store) ProgressPercent() int {
	if len(s.milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range s.milestones {
		if m.Completed {
			done++
		}
	}
	return done * 100 / len(s.milestones)
}

func (s *Store) persistProgress() {
	storage.SetJSON(s.kv, KeyProgress, progressRecord{Milestones: s.milestones}, s.log)
}

// loadMilestones merges stored completion flags onto the default list, so
// unknown stored ids are ignored and missing ones start uncompleted.
func (s *Store) loadMilestones() []domain.Milestone {
	out := domain.DefaultMilestones()
	rec := storage.GetJSON(s.kv, KeyProgress, progressRecord{}, s.log)
	done := make(map[domain.MilestoneID]bool, len(rec.Milestones))
	for _, m := range rec.Milestones {
		if !domain.KnownMilestone(m.ID) {
			s.log.Warn("ignoring unknown stored milestone", "id", m.ID)
			continue
		}
		done[m.ID] = m.Completed
	}
	for i := range out {
		out[i].Completed = done[out[i].ID]
	}
	return out
}
