package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/sotiny/sotiny/internal/repositories/session Repository

import (
	"context"

	"github.com/sotiny/sotiny/internal/models"
)

// Repository defines the interface for draft session persistence
type Repository interface {
	// SaveSession persists a session unconditionally; used only at creation
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.DraftSession, error)

	// CompareAndSwapSession persists a session only if the stored
	// version matches the expected version; used for every mutation
	CompareAndSwapSession(ctx context.Context, input *CompareAndSwapSessionInput) error

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
