package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/murermader/flashcards/internal/api/shared"
	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/domain/srs"
	"github.com/murermader/flashcards/internal/platform/logger"
	"github.com/murermader/flashcards/internal/service/review"
	"github.com/murermader/flashcards/internal/store"
)

// SessionHandler drives review sessions over the command surface. The
// session itself never touches storage; this handler is the one place where
// a completed session's deck is persisted and the owner's statistics are
// updated.
type SessionHandler struct {
	decks     store.DeckStore
	users     store.UserStore
	registry  *review.Registry
	scheduler srs.Service
	logger    *slog.Logger
	validator *validator.Validate
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	decks store.DeckStore,
	users store.UserStore,
	registry *review.Registry,
	scheduler srs.Service,
	log *slog.Logger,
) *SessionHandler {
	if decks == nil || users == nil || registry == nil || scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("dependencies cannot be nil for SessionHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SessionHandler{
		decks:     decks,
		users:     users,
		registry:  registry,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "session_handler")),
		validator: validator.New(),
	}
}

// StartSession handles POST /sessions.
func (s *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), s.logger)

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := s.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed", err)
		return
	}

	deck, err := s.decks.LoadDeck(req.Deck)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	session, err := review.Start(deck, s.scheduler)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	s.registry.Add(session)

	log.Info("review session started",
		slog.String("session_id", session.ID().String()),
		slog.String("deck", deck.Name),
		slog.Int("cards", deck.Len()))
	shared.RespondWithJSON(w, r, http.StatusCreated, s.sessionResponse(session, ""))
}

// CurrentCard handles GET /sessions/{id}/card.
func (s *SessionHandler) CurrentCard(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookup(w, r)
	if !ok {
		return
	}

	if _, err := session.CurrentCard(); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	back := ""
	if session.State() == review.StateAwaitingRating {
		card, _ := session.CurrentCard()
		back = card.Back
	}

	shared.RespondWithJSON(w, r, http.StatusOK, s.sessionResponse(session, back))
}

// Reveal handles POST /sessions/{id}/reveal.
func (s *SessionHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookup(w, r)
	if !ok {
		return
	}

	back, err := session.Reveal()
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, s.sessionResponse(session, back))
}

// Rate handles POST /sessions/{id}/rate. When the rating completes the
// session, the mutated deck is persisted, the owner's statistics are
// updated, and the session is dropped from the registry.
func (s *SessionHandler) Rate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), s.logger)

	session, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req RateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := s.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed", err)
		return
	}

	if err := session.Rate(domain.Difficulty(req.Difficulty)); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if !session.IsComplete() {
		shared.RespondWithJSON(w, r, http.StatusOK, s.sessionResponse(session, ""))
		return
	}

	if err := s.finishSession(r, session); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("review session complete",
		slog.String("session_id", session.ID().String()),
		slog.String("deck", session.Deck().Name),
		slog.Int("cards_rated", session.CardsRated()),
		slog.Duration("elapsed", session.Elapsed()))
	shared.RespondWithJSON(w, r, http.StatusOK, s.sessionResponse(session, ""))
}

// AbandonSession handles DELETE /sessions/{id}: the "simply stop calling"
// cancellation path, made explicit so the registry does not leak. Nothing
// is persisted.
func (s *SessionHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.registry.Remove(session.ID())
	w.WriteHeader(http.StatusNoContent)
}

// finishSession persists a completed session's deck and folds the session
// into the owner's statistics. The deck write is the authoritative outcome:
// once it succeeds the rating is reported as successful, and a failure to
// update the stats is logged rather than returned, since the session is
// already complete and gone from the registry by then.
func (s *SessionHandler) finishSession(r *http.Request, session *review.Session) error {
	deck := session.Deck()

	if err := s.decks.SaveDeck(deck); err != nil {
		return err
	}

	s.registry.Remove(session.ID())
	s.recordOwnerStats(r, session)
	return nil
}

// recordOwnerStats updates the deck owner's statistics after a completed
// session. Best effort: failures are logged, never surfaced.
func (s *SessionHandler) recordOwnerStats(r *http.Request, session *review.Session) {
	log := logger.FromContextOrDefault(r.Context(), s.logger)
	deck := session.Deck()

	users, err := s.users.LoadUsers()
	if err != nil {
		log.Error("failed to load users for session stats",
			slog.String("owner", deck.Owner),
			slog.String("error", err.Error()))
		return
	}

	for _, user := range users {
		if user.Name != deck.Owner {
			continue
		}
		if err := user.RecordSession(session.CardsRated(), session.Elapsed()); err != nil {
			log.Error("failed to record session stats",
				slog.String("owner", deck.Owner),
				slog.String("error", err.Error()))
			return
		}
		if err := s.users.SaveUsers(users); err != nil {
			log.Error("failed to save session stats",
				slog.String("owner", deck.Owner),
				slog.String("error", err.Error()))
		}
		return
	}

	// A deck without a registered owner is legal (sample decks); stats
	// simply have nowhere to go.
	log.Debug("session owner has no user record, skipping stats",
		slog.String("owner", deck.Owner))
}

// lookup resolves the session ID URL parameter against the registry.
func (s *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*review.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID", err)
		return nil, false
	}

	session, err := s.registry.Get(id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return nil, false
	}

	return session, true
}

// sessionResponse builds the externally visible view of a session.
func (s *SessionHandler) sessionResponse(session *review.Session, back string) SessionResponse {
	resp := SessionResponse{
		ID:         session.ID().String(),
		State:      string(session.State()),
		Deck:       session.Deck().Name,
		CardsRated: session.CardsRated(),
		CardsTotal: session.Deck().Len(),
		Back:       back,
	}

	if card, err := session.CurrentCard(); err == nil {
		resp.Front = card.Front
	}

	return resp
}
