package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/murermader/flashcards/internal/api/shared"
	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/platform/logger"
	"github.com/murermader/flashcards/internal/store"
)

// UserHandler handles user management requests.
type UserHandler struct {
	users     store.UserStore
	decks     store.DeckStore
	logger    *slog.Logger
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler. The deck store is needed to
// recompute the derived per-user deck and card counts.
func NewUserHandler(users store.UserStore, decks store.DeckStore, log *slog.Logger) *UserHandler {
	if users == nil || decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("stores cannot be nil for UserHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserHandler{
		users:     users,
		decks:     decks,
		logger:    log.With(slog.String("component", "user_handler")),
		validator: validator.New(),
	}
}

// ListUsers handles GET /users. Counts are recomputed from the decks on
// disk on every read; the stored values are only a cache.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.LoadUsers()
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	decks := h.loadAllDecks(r)
	for _, user := range users {
		user.RecomputeCounts(decks)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// CreateUser handles POST /users. User names are identities; creating an
// existing name is a conflict.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed", err)
		return
	}

	users, err := h.users.LoadUsers()
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	for _, existing := range users {
		if existing.Name == req.Name {
			shared.RespondWithError(w, r, http.StatusConflict, "User already exists", nil)
			return
		}
	}

	user, err := domain.NewUser(req.Name)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	users = append(users, user)
	if err := h.users.SaveUsers(users); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("user created", slog.String("user", user.Name))
	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// ResetTime handles POST /users/{name}/reset-time.
func (h *UserHandler) ResetTime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	name := chi.URLParam(r, "name")

	users, err := h.users.LoadUsers()
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	for _, user := range users {
		if user.Name == name {
			user.ResetTime()
			if err := h.users.SaveUsers(users); err != nil {
				respondWithMappedError(w, r, err)
				return
			}

			log.Info("learning time reset", slog.String("user", name))
			shared.RespondWithJSON(w, r, http.StatusOK, user)
			return
		}
	}

	respondWithMappedError(w, r, store.ErrUserNotFound)
}

// loadAllDecks loads every readable deck; corrupt or vanished decks are
// skipped, since incomplete counts beat a failed user listing.
func (h *UserHandler) loadAllDecks(r *http.Request) []*domain.Deck {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	names, err := h.decks.ListDeckNames()
	if err != nil {
		return nil
	}

	decks := make([]*domain.Deck, 0, len(names))
	for _, name := range names {
		deck, err := h.decks.LoadDeck(name)
		if err != nil {
			log.Warn("skipping unreadable deck while counting",
				slog.String("deck", name),
				slog.String("error", err.Error()))
			continue
		}
		decks = append(decks, deck)
	}

	return decks
}
