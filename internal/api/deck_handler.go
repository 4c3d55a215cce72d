// Package api provides the HTTP command surface consumed by the external
// GUI. Handlers translate requests into core operations and core errors
// into status codes; no study logic lives here.
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
	"github.com/murermader/flashcards/internal/generation"
	"github.com/murermader/flashcards/internal/platform/logger"
	"github.com/murermader/flashcards/internal/store"
)

// DeckHandler handles deck and card management requests.
type DeckHandler struct {
	decks     store.DeckStore
	logger    *slog.Logger
	validator *validator.Validate
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks store.DeckStore, log *slog.Logger) *DeckHandler {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("decks store cannot be nil for DeckHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &DeckHandler{
		decks:     decks,
		logger:    log.With(slog.String("component", "deck_handler")),
		validator: validator.New(),
	}
}

// ListDecks handles GET /decks.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	names, err := h.decks.ListDeckNames()
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeckListResponse{Decks: names})
}

// CreateDeck handles POST /decks. The deck name doubles as the file stem,
// so an existing deck with the same name is a conflict, not an overwrite.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateDeckRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if h.deckExists(req.Name) {
		shared.RespondWithError(w, r, http.StatusConflict, "Deck already exists", nil)
		return
	}

	deck, err := domain.NewDeck(req.Name, req.Owner)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.decks.SaveDeck(deck); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("deck created",
		slog.String("deck", deck.Name),
		slog.String("owner", deck.Owner))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// CreateSampleDeck handles POST /decks/sample.
func (h *DeckHandler) CreateSampleDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SampleDeckRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if h.deckExists(req.Name) {
		shared.RespondWithError(w, r, http.StatusConflict, "Deck already exists", nil)
		return
	}

	deck, err := generation.SampleDeck(req.Name, req.Owner, req.Length)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.decks.SaveDeck(deck); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("sample deck created",
		slog.String("deck", deck.Name),
		slog.Int("cards", deck.Len()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// GetDeck handles GET /decks/{name}.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.decks.LoadDeck(chi.URLParam(r, "name"))
	if err != nil {
		// A corrupt file still yields a placeholder deck, but the caller
		// must see the failure, not the placeholder.
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /decks/{name}.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	name := chi.URLParam(r, "name")

	if err := h.decks.DeleteDeck(name); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("deck deleted", slog.String("deck", name))
	w.WriteHeader(http.StatusNoContent)
}

// RenameDeck handles PATCH /decks/{name}. The file stem follows the name:
// the deck is saved under the new name first, then the old file is removed,
// so a failure can leave a duplicate but never a loss.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	oldName := chi.URLParam(r, "name")

	var req RenameDeckRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.NewName == oldName {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"New name matches the current name", nil)
		return
	}

	if h.deckExists(req.NewName) {
		shared.RespondWithError(w, r, http.StatusConflict, "Deck already exists", nil)
		return
	}

	deck, err := h.decks.LoadDeck(oldName)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := deck.Rename(req.NewName); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.decks.SaveDeck(deck); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.decks.DeleteDeck(oldName); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("deck renamed",
		slog.String("from", oldName),
		slog.String("to", req.NewName))
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// AddCard handles POST /decks/{name}/cards.
func (h *DeckHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req AddCardRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.decks.LoadDeck(chi.URLParam(r, "name"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	card, err := domain.NewFlashcard(req.Front, req.Back)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := deck.AddCard(*card); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.decks.SaveDeck(deck); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// EditCard handles PUT /decks/{name}/cards/{cardID}.
func (h *DeckHandler) EditCard(w http.ResponseWriter, r *http.Request) {
	cardID, ok := h.parseCardID(w, r)
	if !ok {
		return
	}

	var req EditCardRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.decks.LoadDeck(chi.URLParam(r, "name"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := deck.EditCard(cardID, req.Front, req.Back); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.decks.SaveDeck(deck); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveCard handles DELETE /decks/{name}/cards/{cardID}. Cards are
// addressed by ID, never by index or front text.
func (h *DeckHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	cardID, ok := h.parseCardID(w, r)
	if !ok {
		return
	}

	deck, err := h.decks.LoadDeck(chi.URLParam(r, "name"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := deck.RemoveCard(cardID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.decks.SaveDeck(deck); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deckExists reports whether a deck file with the given name is present.
func (h *DeckHandler) deckExists(name string) bool {
	names, err := h.decks.ListDeckNames()
	if err != nil {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// decodeAndValidate decodes the request body into dst and validates it.
// On failure it writes the error response and returns false.
func (h *DeckHandler) decodeAndValidate(
	w http.ResponseWriter,
	r *http.Request,
	dst interface{},
) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed", err)
		return false
	}

	return true
}

// parseCardID extracts and parses the cardID URL parameter.
func (h *DeckHandler) parseCardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID", err)
		return uuid.Nil, false
	}
	return id, true
}
