package api

import (
	"errors"
	"net/http"

	"github.com/murermader/flashcards/internal/api/shared"
	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/service/review"
	"github.com/murermader/flashcards/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This keeps internal error details out of
// client responses.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrSessionNotFound),
		errors.Is(err, domain.ErrCardNotInDeck):
		return http.StatusNotFound

	// Bad requests
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrDeckNameEmpty),
		errors.Is(err, domain.ErrDeckOwnerEmpty),
		errors.Is(err, domain.ErrCardFrontEmpty),
		errors.Is(err, domain.ErrCardBackEmpty),
		errors.Is(err, domain.ErrUserNameEmpty),
		errors.Is(err, review.ErrEmptyDeck):
		return http.StatusBadRequest

	// Session contract violations: the GUI called out of order
	case errors.Is(err, review.ErrInvalidTransition),
		errors.Is(err, review.ErrSessionComplete):
		return http.StatusConflict

	// Filesystem denials
	case errors.Is(err, store.ErrPermission):
		return http.StatusForbidden

	// Undecodable store files
	case errors.Is(err, store.ErrCorrupt):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-actionable message for the
// error. Paths and wrapped causes never reach the client.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrCardNotInDeck):
		return "Card not found in deck"
	case errors.Is(err, review.ErrSessionNotFound):
		return "Review session not found"
	case errors.Is(err, store.ErrInvalidDeck):
		return "Deck is invalid and was not saved"
	case errors.Is(err, store.ErrCorrupt):
		return "Stored data could not be read; it may be from an older version"
	case errors.Is(err, store.ErrPermission):
		return "The file system denied the operation"
	case errors.Is(err, review.ErrEmptyDeck):
		return "Deck has no cards to review"
	case errors.Is(err, review.ErrSessionComplete):
		return "Review session is already complete"
	case errors.Is(err, review.ErrInvalidTransition):
		return "Operation not valid in the session's current state"
	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Difficulty must be easy, ok, or hard"
	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError is the common error exit for handlers.
func respondWithMappedError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithError(w, r, status, message, err)
}
