package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/murermader/flashcards/internal/domain/srs"
	"github.com/murermader/flashcards/internal/platform/logger"
	"github.com/murermader/flashcards/internal/service/review"
	"github.com/murermader/flashcards/internal/store"
)

// Stores bundles the persistence dependencies the router needs.
type Stores struct {
	Decks store.DeckStore
	Users store.UserStore
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(
	stores Stores,
	registry *review.Registry,
	scheduler srs.Service,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	deckHandler := NewDeckHandler(stores.Decks, log)
	userHandler := NewUserHandler(stores.Users, stores.Decks, log)
	sessionHandler := NewSessionHandler(stores.Decks, stores.Users, registry, scheduler, log)

	r.Route("/api", func(r chi.Router) {
		// Deck and card management
		r.Get("/decks", deckHandler.ListDecks)
		r.Post("/decks", deckHandler.CreateDeck)
		r.Post("/decks/sample", deckHandler.CreateSampleDeck)
		r.Get("/decks/{name}", deckHandler.GetDeck)
		r.Patch("/decks/{name}", deckHandler.RenameDeck)
		r.Delete("/decks/{name}", deckHandler.DeleteDeck)
		r.Post("/decks/{name}/cards", deckHandler.AddCard)
		r.Put("/decks/{name}/cards/{cardID}", deckHandler.EditCard)
		r.Delete("/decks/{name}/cards/{cardID}", deckHandler.RemoveCard)

		// Users
		r.Get("/users", userHandler.ListUsers)
		r.Post("/users", userHandler.CreateUser)
		r.Post("/users/{name}/reset-time", userHandler.ResetTime)

		// Review sessions
		r.Post("/sessions", sessionHandler.StartSession)
		r.Get("/sessions/{id}/card", sessionHandler.CurrentCard)
		r.Post("/sessions/{id}/reveal", sessionHandler.Reveal)
		r.Post("/sessions/{id}/rate", sessionHandler.Rate)
		r.Delete("/sessions/{id}", sessionHandler.AbandonSession)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// requestLogger places a request-scoped logger in the context so handlers
// and the layers below log with consistent request attributes.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With(
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), reqLog)))
		})
	}
}
