package draft

import (
	"context"
	"errors"
	"time"

	"github.com/sotiny/sotiny/internal/catalog"
	"github.com/sotiny/sotiny/internal/common/clock"
	"github.com/sotiny/sotiny/internal/common/uuid"
	"github.com/sotiny/sotiny/internal/generator"
	"github.com/sotiny/sotiny/internal/models"
	sessionRepo "github.com/sotiny/sotiny/internal/repositories/session"
)

const (
	defaultSessionTTL   = 6 * time.Hour
	defaultStoreTimeout = 5 * time.Second
)

// service implements the Service interface. It holds no per-session
// state of its own: every mutation is one read, local validation, and
// one conditional write, so instances can be replicated freely. The
// store's compare-and-swap is the only serialization point.
type service struct {
	config      *Config
	sessionRepo sessionRepo.Repository
	generator   generator.PoolGenerator
	catalog     *catalog.Catalog
	clock       clock.Clock
	uuid        uuid.UUID
}

// New creates a new draft service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.Generator == nil {
		return nil, errors.New("generator cannot be nil")
	}

	if cfg.Catalog == nil {
		return nil, errors.New("catalog cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUID == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.StoreTimeout == 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	return &service{
		config:      cfg,
		sessionRepo: cfg.SessionRepo,
		generator:   cfg.Generator,
		catalog:     cfg.Catalog,
		clock:       cfg.Clock,
		uuid:        cfg.UUID,
	}, nil
}

// StartSession creates an open session with one generated pool per player
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	seen := make(map[string]bool, len(input.PlayerIDs))
	for _, playerID := range input.PlayerIDs {
		if seen[playerID] {
			return nil, ErrDuplicatePlayer
		}
		seen[playerID] = true
	}

	cfg := input.Config
	if cfg.Seed == 0 {
		// Record the seed actually used so the draw is reproducible
		cfg.Seed = s.clock.Now().UnixNano()
	}

	generated, err := s.generator.Generate(&generator.GenerateInput{
		PlayerIDs: input.PlayerIDs,
		Config:    cfg,
	})
	if err != nil {
		return nil, err
	}

	session := &models.DraftSession{
		ID:        s.uuid.NewUUID(),
		Status:    models.SessionStatusOpen,
		Config:    cfg,
		Pools:     generated.Pools,
		CreatedAt: s.clock.Now(),
		TTL:       s.config.SessionTTL,
		Version:   1,
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	if err := s.sessionRepo.SaveSession(storeCtx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	return &StartSessionOutput{
		Session: session,
	}, nil
}

// SwapCard replaces one card in a player's pool with another of the
// same rarity, guarded by the store's compare-and-swap
func (s *service) SwapCard(ctx context.Context, input *SwapCardInput) (*SwapCardOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.fetchSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionStatusOpen {
		return nil, ErrSessionNotOpen
	}

	pool := session.PoolFor(input.PlayerID)
	if pool == nil {
		return nil, ErrPlayerNotInSession
	}

	if !pool.Contains(input.CardOut) {
		return nil, ErrCardNotInPool
	}

	if pool.Contains(input.CardIn) {
		return nil, ErrCardAlreadyInPool
	}

	cardOut, err := s.catalog.Card(input.CardOut)
	if err != nil {
		return nil, ErrCardNotInPool
	}

	cardIn, err := s.catalog.Card(input.CardIn)
	if err != nil {
		return nil, ErrCardNotInCatalog
	}

	if cardIn.Rarity != cardOut.Rarity {
		return nil, ErrIllegalSwap
	}

	pool.Replace(input.CardOut, input.CardIn)

	if err := s.swapSession(ctx, session); err != nil {
		return nil, err
	}

	return &SwapCardOutput{
		Pool: pool,
	}, nil
}

// LockSession transitions a session from open to locked
func (s *service) LockSession(ctx context.Context, input *LockSessionInput) (*LockSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.fetchSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionStatusOpen {
		return nil, ErrSessionNotOpen
	}

	session.Status = models.SessionStatusLocked

	if err := s.swapSession(ctx, session); err != nil {
		return nil, err
	}

	return &LockSessionOutput{
		Session: session,
	}, nil
}

// CompleteSession transitions a session from locked to completed. The
// record stays in the store until its TTL runs out, so final pools
// remain readable for a while after completion.
func (s *service) CompleteSession(ctx context.Context, input *CompleteSessionInput) (*CompleteSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.fetchSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionStatusLocked {
		return nil, ErrSessionNotLocked
	}

	session.Status = models.SessionStatusCompleted

	if err := s.swapSession(ctx, session); err != nil {
		return nil, err
	}

	return &CompleteSessionOutput{
		Session: session,
	}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.fetchSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// fetchSession reads a session with a bounded store call
func (s *service) fetchSession(ctx context.Context, sessionID string) (*models.DraftSession, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetSession(storeCtx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}

// swapSession advances the session's version and writes it through the
// store's compare-and-swap. A version conflict or a timed-out write
// both surface as ErrConcurrentModification: a timeout means the write
// may or may not have applied, so the caller must re-read before
// retrying either way.
func (s *service) swapSession(ctx context.Context, session *models.DraftSession) error {
	expected := session.Version
	session.Version++

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	err := s.sessionRepo.CompareAndSwapSession(storeCtx, &sessionRepo.CompareAndSwapSessionInput{
		ExpectedVersion: expected,
		Session:         session,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sessionRepo.ErrVersionConflict):
		return ErrConcurrentModification
	case errors.Is(err, context.DeadlineExceeded):
		return ErrConcurrentModification
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		// The session expired between the read and the write
		return ErrSessionNotFound
	}
	return err
}
