package models

import (
	"time"
)

// SessionStatus represents the current state of a draft session
type SessionStatus string

const (
	// SessionStatusOpen indicates pools may still be swapped
	SessionStatusOpen SessionStatus = "open"

	// SessionStatusLocked indicates no further swaps are permitted
	SessionStatusLocked SessionStatus = "locked"

	// SessionStatusCompleted indicates the session finished normally
	SessionStatusCompleted SessionStatus = "completed"

	// SessionStatusExpired indicates the session timed out before completion
	SessionStatusExpired SessionStatus = "expired"
)

// PoolConfig is the configuration snapshot a session was generated from
type PoolConfig struct {
	// PoolSize is the number of cards in each player's pool
	PoolSize int `json:"pool_size"`

	// RarityCounts maps each rarity tier to its card count per pool.
	// The counts must sum to PoolSize.
	RarityCounts map[Rarity]int `json:"rarity_counts"`

	// Seed drives pool generation; the same seed reproduces the same pools
	Seed int64 `json:"seed"`
}

// DraftSession represents one sealed-pool distribution event. The
// session owns its pools; pools have no existence outside it.
type DraftSession struct {
	// ID is the unique identifier for the session
	ID string `json:"id"`

	// Status is the current lifecycle state
	Status SessionStatus `json:"status"`

	// Config is the generation configuration snapshot
	Config PoolConfig `json:"config"`

	// Pools holds one pool per player, in registration order
	Pools []*Pool `json:"pools"`

	// CreatedAt is when the session was created
	CreatedAt time.Time `json:"created_at"`

	// TTL is how long the session may live without completing
	TTL time.Duration `json:"ttl"`

	// Version increments on every persisted mutation and guards
	// compare-and-swap writes
	Version int64 `json:"version"`
}

// PoolFor returns the pool owned by the given player, or nil
func (s *DraftSession) PoolFor(playerID string) *Pool {
	for _, p := range s.Pools {
		if p.PlayerID == playerID {
			return p
		}
	}
	return nil
}
