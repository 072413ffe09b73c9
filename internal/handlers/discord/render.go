package discord

import (
	"errors"

	"github.com/sotiny/sotiny/internal/generator"
	"github.com/sotiny/sotiny/internal/render"
	"github.com/sotiny/sotiny/internal/services/draft"
)

// userFacingError translates core errors into messages suitable for a
// Discord reply. Unrecognized errors get a generic message; the real
// error is already logged by the caller.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, draft.ErrSessionNotFound):
		return "That session doesn't exist or has expired."
	case errors.Is(err, draft.ErrSessionNotOpen):
		return "That session is no longer open for swaps."
	case errors.Is(err, draft.ErrSessionNotLocked):
		return "Lock the session before completing it."
	case errors.Is(err, draft.ErrDuplicatePlayer):
		return "Each player can only be listed once."
	case errors.Is(err, draft.ErrPlayerNotInSession):
		return "You don't have a pool in that session."
	case errors.Is(err, draft.ErrCardNotInPool):
		return "That card isn't in your pool."
	case errors.Is(err, draft.ErrCardAlreadyInPool):
		return "That card is already in your pool."
	case errors.Is(err, draft.ErrCardNotInCatalog):
		return "No card with that ID exists."
	case errors.Is(err, draft.ErrIllegalSwap):
		return "Swaps must keep the same rarity."
	case errors.Is(err, draft.ErrConcurrentModification):
		return "Someone else changed the session at the same time — try again."
	case errors.Is(err, generator.ErrInvalidConfig):
		return "That pool configuration doesn't add up."
	case errors.Is(err, generator.ErrInsufficientCatalog):
		return "The catalog doesn't have enough cards for that pool size."
	case errors.Is(err, render.ErrAssetMissing):
		return "One of your cards is missing its image; ping the cube curator."
	}
	return "Something went wrong. Try again in a moment."
}
