package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/sotiny/sotiny/internal/catalog"
	clockMocks "github.com/sotiny/sotiny/internal/common/clock/mocks"
	uuidMocks "github.com/sotiny/sotiny/internal/common/uuid/mocks"
	"github.com/sotiny/sotiny/internal/generator"
	generatorMocks "github.com/sotiny/sotiny/internal/generator/mocks"
	"github.com/sotiny/sotiny/internal/models"
	sessionRepo "github.com/sotiny/sotiny/internal/repositories/session"
	sessionMocks "github.com/sotiny/sotiny/internal/repositories/session/mocks"
)

type DraftServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRepo      *sessionMocks.MockRepository
	mockGenerator *generatorMocks.MockPoolGenerator
	mockClock     *clockMocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	catalog       *catalog.Catalog
	draftService  Service
	ctx           context.Context

	// Test data
	testTime      time.Time
	testSessionID string
	testPlayerID  string
	testConfig    models.PoolConfig

	// Reusable test fixtures
	expectedPools []*models.Pool
}

func (s *DraftServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockGenerator = generatorMocks.NewMockPoolGenerator(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	// Initialize test data
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testSessionID = "test-session-id"
	s.testPlayerID = "player-1"
	s.testConfig = models.PoolConfig{
		PoolSize: 2,
		RarityCounts: map[models.Rarity]int{
			models.RarityRare:   1,
			models.RarityCommon: 1,
		},
		Seed: 42,
	}

	// Set up the clock mock to return our test time
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	cat, err := catalog.New(&catalog.Config{
		Cards: []*models.Card{
			{ID: "rare-1", Name: "Rare One", Rarity: models.RarityRare},
			{ID: "rare-2", Name: "Rare Two", Rarity: models.RarityRare},
			{ID: "rare-3", Name: "Rare Three", Rarity: models.RarityRare},
			{ID: "common-1", Name: "Common One", Rarity: models.RarityCommon},
			{ID: "common-2", Name: "Common Two", Rarity: models.RarityCommon},
			{ID: "common-3", Name: "Common Three", Rarity: models.RarityCommon},
		},
	})
	s.Require().NoError(err)
	s.catalog = cat

	s.expectedPools = []*models.Pool{
		{PlayerID: "player-1", CardIDs: []string{"rare-1", "common-1"}},
		{PlayerID: "player-2", CardIDs: []string{"rare-2", "common-2"}},
	}

	svc, err := New(&Config{
		SessionRepo:  s.mockRepo,
		Generator:    s.mockGenerator,
		Catalog:      s.catalog,
		Clock:        s.mockClock,
		UUID:         s.mockUUID,
		SessionTTL:   time.Hour,
		StoreTimeout: time.Second,
	})
	s.Require().NoError(err)
	s.draftService = svc
}

func (s *DraftServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDraftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DraftServiceTestSuite))
}

// openSession builds a fresh open session fixture; tests that mutate
// it must not share one instance across calls
func (s *DraftServiceTestSuite) openSession() *models.DraftSession {
	return &models.DraftSession{
		ID:     s.testSessionID,
		Status: models.SessionStatusOpen,
		Config: s.testConfig,
		Pools: []*models.Pool{
			{PlayerID: "player-1", CardIDs: []string{"rare-1", "common-1"}},
			{PlayerID: "player-2", CardIDs: []string{"rare-2", "common-2"}},
		},
		CreatedAt: s.testTime,
		TTL:       time.Hour,
		Version:   1,
	}
}

func (s *DraftServiceTestSuite) TestStartSession() {
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)

	s.mockGenerator.EXPECT().Generate(&generator.GenerateInput{
		PlayerIDs: []string{"player-1", "player-2"},
		Config:    s.testConfig,
	}).Return(&generator.GenerateOutput{
		Pools: s.expectedPools,
	}, nil)

	s.mockRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			s.Equal(s.testSessionID, input.Session.ID)
			s.Equal(models.SessionStatusOpen, input.Session.Status)
			s.Equal(int64(1), input.Session.Version)
			s.Equal(time.Hour, input.Session.TTL)
			s.Equal(s.testTime, input.Session.CreatedAt)
			s.Len(input.Session.Pools, 2)
			return nil
		})

	output, err := s.draftService.StartSession(s.ctx, &StartSessionInput{
		PlayerIDs: []string{"player-1", "player-2"},
		Config:    s.testConfig,
	})
	s.Require().NoError(err)
	s.Equal(s.testSessionID, output.Session.ID)
	s.Equal(models.SessionStatusOpen, output.Session.Status)
	s.Equal(s.expectedPools, output.Session.Pools)
}

func (s *DraftServiceTestSuite) TestStartSessionFillsSeed() {
	cfg := s.testConfig
	cfg.Seed = 0

	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)

	s.mockGenerator.EXPECT().Generate(gomock.Any()).DoAndReturn(
		func(input *generator.GenerateInput) (*generator.GenerateOutput, error) {
			s.Equal(s.testTime.UnixNano(), input.Config.Seed)
			return &generator.GenerateOutput{Pools: s.expectedPools}, nil
		})

	s.mockRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			// The session snapshot records the seed actually used
			s.Equal(s.testTime.UnixNano(), input.Session.Config.Seed)
			return nil
		})

	_, err := s.draftService.StartSession(s.ctx, &StartSessionInput{
		PlayerIDs: []string{"player-1", "player-2"},
		Config:    cfg,
	})
	s.Require().NoError(err)
}

func (s *DraftServiceTestSuite) TestStartSessionDuplicatePlayer() {
	_, err := s.draftService.StartSession(s.ctx, &StartSessionInput{
		PlayerIDs: []string{"player-1", "player-2", "player-1"},
		Config:    s.testConfig,
	})
	s.ErrorIs(err, ErrDuplicatePlayer)
}

func (s *DraftServiceTestSuite) TestStartSessionGeneratorError() {
	s.mockGenerator.EXPECT().Generate(gomock.Any()).Return(nil, generator.ErrInsufficientCatalog)

	_, err := s.draftService.StartSession(s.ctx, &StartSessionInput{
		PlayerIDs: []string{"player-1"},
		Config:    s.testConfig,
	})
	s.ErrorIs(err, generator.ErrInsufficientCatalog)
}

func (s *DraftServiceTestSuite) TestSwapCard() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), &sessionRepo.GetSessionInput{
		SessionID: s.testSessionID,
	}).Return(s.openSession(), nil)

	s.mockRepo.EXPECT().CompareAndSwapSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *sessionRepo.CompareAndSwapSessionInput) error {
			s.Equal(int64(1), input.ExpectedVersion)
			s.Equal(int64(2), input.Session.Version)
			pool := input.Session.PoolFor("player-1")
			s.Require().NotNil(pool)
			s.Equal([]string{"rare-3", "common-1"}, pool.CardIDs)
			return nil
		})

	output, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	s.Require().NoError(err)

	// Size unchanged, exactly one card replaced
	s.Len(output.Pool.CardIDs, 2)
	s.False(output.Pool.Contains("rare-1"))
	s.True(output.Pool.Contains("rare-3"))
	s.True(output.Pool.Contains("common-1"))
}

func (s *DraftServiceTestSuite) TestSwapCardSessionNotFound() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: "missing-session-id",
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *DraftServiceTestSuite) TestSwapCardSessionNotOpen() {
	locked := s.openSession()
	locked.Status = models.SessionStatusLocked

	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(locked, nil)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	s.ErrorIs(err, ErrSessionNotOpen)
}

func (s *DraftServiceTestSuite) TestSwapCardPlayerNotInSession() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-9",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	s.ErrorIs(err, ErrPlayerNotInSession)
}

func (s *DraftServiceTestSuite) TestSwapCardNotInPool() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-2", // held by player-2, not player-1
		CardIn:    "rare-3",
	})
	s.ErrorIs(err, ErrCardNotInPool)
}

func (s *DraftServiceTestSuite) TestSwapCardAlreadyInPool() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "common-1",
	})
	s.ErrorIs(err, ErrCardAlreadyInPool)
}

func (s *DraftServiceTestSuite) TestSwapCardNotInCatalog() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "no-such-card",
	})
	s.ErrorIs(err, ErrCardNotInCatalog)
}

func (s *DraftServiceTestSuite) TestSwapCardRarityMismatch() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "common-3",
	})
	s.ErrorIs(err, ErrIllegalSwap)
}

func (s *DraftServiceTestSuite) TestSwapCardConcurrentModification() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)
	s.mockRepo.EXPECT().CompareAndSwapSession(gomock.Any(), gomock.Any()).Return(sessionRepo.ErrVersionConflict)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	s.ErrorIs(err, ErrConcurrentModification)
}

func (s *DraftServiceTestSuite) TestSwapCardStoreTimeout() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)
	s.mockRepo.EXPECT().CompareAndSwapSession(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

	// A timed-out write may or may not have applied; it surfaces the
	// same as losing the version race
	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	s.ErrorIs(err, ErrConcurrentModification)
}

func (s *DraftServiceTestSuite) TestSwapCardExpiryMidOperation() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)
	s.mockRepo.EXPECT().CompareAndSwapSession(gomock.Any(), gomock.Any()).Return(sessionRepo.ErrSessionNotFound)

	_, err := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *DraftServiceTestSuite) TestSwapCardRaceExactlyOneWinner() {
	// Both swaps read the same version of the session; the store
	// accepts the first conditional write and rejects the second
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sessionRepo.GetSessionInput) (*models.DraftSession, error) {
			return s.openSession(), nil
		}).Times(2)

	var stored *models.DraftSession
	casCalls := 0
	s.mockRepo.EXPECT().CompareAndSwapSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *sessionRepo.CompareAndSwapSessionInput) error {
			casCalls++
			if casCalls == 1 {
				stored = input.Session
				return nil
			}
			return sessionRepo.ErrVersionConflict
		}).Times(2)

	first, firstErr := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "rare-1",
		CardIn:    "rare-3",
	})
	_, secondErr := s.draftService.SwapCard(s.ctx, &SwapCardInput{
		SessionID: s.testSessionID,
		PlayerID:  "player-1",
		CardOut:   "common-1",
		CardIn:    "common-3",
	})

	s.Require().NoError(firstErr)
	s.ErrorIs(secondErr, ErrConcurrentModification)

	// The stored state reflects exactly the winning swap, not a merge
	s.Require().NotNil(stored)
	pool := stored.PoolFor("player-1")
	s.Equal([]string{"rare-3", "common-1"}, pool.CardIDs)
	s.Len(first.Pool.CardIDs, 2)
}

func (s *DraftServiceTestSuite) TestLockSession() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)

	s.mockRepo.EXPECT().CompareAndSwapSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *sessionRepo.CompareAndSwapSessionInput) error {
			s.Equal(int64(1), input.ExpectedVersion)
			s.Equal(models.SessionStatusLocked, input.Session.Status)
			return nil
		})

	output, err := s.draftService.LockSession(s.ctx, &LockSessionInput{
		SessionID: s.testSessionID,
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusLocked, output.Session.Status)
}

func (s *DraftServiceTestSuite) TestLockSessionNotOpen() {
	locked := s.openSession()
	locked.Status = models.SessionStatusLocked

	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(locked, nil)

	_, err := s.draftService.LockSession(s.ctx, &LockSessionInput{
		SessionID: s.testSessionID,
	})
	s.ErrorIs(err, ErrSessionNotOpen)
}

func (s *DraftServiceTestSuite) TestCompleteSession() {
	locked := s.openSession()
	locked.Status = models.SessionStatusLocked

	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(locked, nil)

	s.mockRepo.EXPECT().CompareAndSwapSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *sessionRepo.CompareAndSwapSessionInput) error {
			s.Equal(models.SessionStatusCompleted, input.Session.Status)
			return nil
		})

	output, err := s.draftService.CompleteSession(s.ctx, &CompleteSessionInput{
		SessionID: s.testSessionID,
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusCompleted, output.Session.Status)
}

func (s *DraftServiceTestSuite) TestCompleteSessionBeforeLock() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(s.openSession(), nil)

	_, err := s.draftService.CompleteSession(s.ctx, &CompleteSessionInput{
		SessionID: s.testSessionID,
	})
	s.ErrorIs(err, ErrSessionNotLocked)
}

func (s *DraftServiceTestSuite) TestGetSession() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), &sessionRepo.GetSessionInput{
		SessionID: s.testSessionID,
	}).Return(s.openSession(), nil)

	output, err := s.draftService.GetSession(s.ctx, &GetSessionInput{
		SessionID: s.testSessionID,
	})
	s.Require().NoError(err)
	s.Equal(s.testSessionID, output.Session.ID)
	s.Len(output.Session.Pools, 2)
}

func (s *DraftServiceTestSuite) TestGetSessionNotFound() {
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.draftService.GetSession(s.ctx, &GetSessionInput{
		SessionID: "expired-session-id",
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *DraftServiceTestSuite) TestGetSessionStoreError() {
	storeErr := errors.New("connection reset")
	s.mockRepo.EXPECT().GetSession(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	_, err := s.draftService.GetSession(s.ctx, &GetSessionInput{
		SessionID: s.testSessionID,
	})
	s.ErrorIs(err, storeErr)
}
