package draft

import (
	"time"

	"github.com/sotiny/sotiny/internal/catalog"
	"github.com/sotiny/sotiny/internal/common/clock"
	"github.com/sotiny/sotiny/internal/common/uuid"
	"github.com/sotiny/sotiny/internal/generator"
	"github.com/sotiny/sotiny/internal/models"
	sessionRepo "github.com/sotiny/sotiny/internal/repositories/session"
)

// Config holds the draft service's dependencies and settings
type Config struct {
	// SessionRepo persists session state
	SessionRepo sessionRepo.Repository

	// Generator builds pools from the catalog
	Generator generator.PoolGenerator

	// Catalog is the card reference data
	Catalog *catalog.Catalog

	// Clock provides the current time
	Clock clock.Clock

	// UUID generates session IDs
	UUID uuid.UUID

	// SessionTTL is how long a session may live without completing.
	// Defaults to 6 hours.
	SessionTTL time.Duration

	// StoreTimeout bounds each store call. Defaults to 5 seconds.
	StoreTimeout time.Duration
}

type StartSessionInput struct {
	// PlayerIDs are the participating players; repeats are rejected
	PlayerIDs []string

	// Config is the pool configuration. A zero Seed is replaced with a
	// clock-derived one, and the session records the seed actually used.
	Config models.PoolConfig
}

type StartSessionOutput struct {
	Session *models.DraftSession
}

type SwapCardInput struct {
	SessionID string
	PlayerID  string

	// CardOut is the card leaving the pool
	CardOut string

	// CardIn is the card entering the pool; it must exist in the
	// catalog at CardOut's rarity tier
	CardIn string
}

type SwapCardOutput struct {
	// Pool is the player's pool after the swap
	Pool *models.Pool
}

type LockSessionInput struct {
	SessionID string
}

type LockSessionOutput struct {
	Session *models.DraftSession
}

type CompleteSessionInput struct {
	SessionID string
}

type CompleteSessionOutput struct {
	Session *models.DraftSession
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.DraftSession
}
