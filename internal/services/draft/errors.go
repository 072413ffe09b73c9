package draft

import "errors"

// Define errors
var (
	// ErrSessionNotFound is returned when a session does not exist or
	// has expired; callers cannot tell the two apart
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotOpen is returned when a mutation requires an open session
	ErrSessionNotOpen = errors.New("session is not open")

	// ErrSessionNotLocked is returned when completion is attempted
	// before the session is locked
	ErrSessionNotLocked = errors.New("session is not locked")

	// ErrDuplicatePlayer is returned when the player list contains repeats
	ErrDuplicatePlayer = errors.New("duplicate player in player list")

	// ErrPlayerNotInSession is returned when a player holds no pool in
	// the session
	ErrPlayerNotInSession = errors.New("player not in session")

	// ErrCardNotInPool is returned when the outgoing card is not in
	// the player's pool
	ErrCardNotInPool = errors.New("card not in pool")

	// ErrCardAlreadyInPool is returned when the incoming card is
	// already in the player's pool
	ErrCardAlreadyInPool = errors.New("card already in pool")

	// ErrCardNotInCatalog is returned when the incoming card does not
	// exist in the catalog
	ErrCardNotInCatalog = errors.New("card not in catalog")

	// ErrIllegalSwap is returned when a swap would change the pool's
	// rarity distribution
	ErrIllegalSwap = errors.New("swap must keep the same rarity")

	// ErrConcurrentModification is returned when a mutation loses the
	// compare-and-swap race; the caller may re-read and retry
	ErrConcurrentModification = errors.New("concurrent modification")
)
