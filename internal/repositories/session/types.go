package session

import "github.com/sotiny/sotiny/internal/models"

type SaveSessionInput struct {
	Session *models.DraftSession
}

type GetSessionInput struct {
	SessionID string
}

type CompareAndSwapSessionInput struct {
	// ExpectedVersion is the version the stored record must still have
	ExpectedVersion int64

	// Session is the new record to persist; its Version should already
	// be advanced past ExpectedVersion
	Session *models.DraftSession
}

type DeleteSessionInput struct {
	SessionID string
}
