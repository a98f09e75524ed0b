package ports

import (
	"context"
	"encoding/json"

	"svw.info/birthdayos/internal/domain"
)

// Random is the only source of non-determinism in grid generation.
type Random interface {
	// Intn returns a uniformly distributed int in [0, n).
	Intn(n int) int
}

// KV is the durable key-value collaborator behind the collection store.
// Backends report errors; callers that must not fail go through the
// storage.GetJSON/SetJSON helpers.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// CharmValidation is the tagged outcome of checking one persisted charm.
type CharmValidation interface {
	OK() bool
	Value() domain.Charm
	Diagnostic() string
}

// CharmValidator checks persisted charm records before they are rehydrated.
type CharmValidator interface {
	ValidateCharm(raw json.RawMessage) CharmValidation
}

// Hinter suggests the next safe tile on a game in progress.
type Hinter interface {
	Hint(ctx context.Context, s domain.GameSnapshot) (domain.Hint, bool, error)
}

// Chime plays a short cue for game events. Implementations must not block.
type Chime interface {
	Play(cue string)
}
