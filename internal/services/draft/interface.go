package draft

import "context"

// Service defines the interface for draft session operations
type Service interface {
	// StartSession creates an open session with one generated pool per player
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// SwapCard replaces one card in a player's pool with another of the
	// same rarity
	SwapCard(ctx context.Context, input *SwapCardInput) (*SwapCardOutput, error)

	// LockSession transitions a session from open to locked
	LockSession(ctx context.Context, input *LockSessionInput) (*LockSessionOutput, error)

	// CompleteSession transitions a session from locked to completed
	CompleteSession(ctx context.Context, input *CompleteSessionInput) (*CompleteSessionOutput, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
}
