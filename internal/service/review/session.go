// Package review implements the review session state machine: a single
// practice pass over one deck's cards, one card at a time.
//
// A session mutates its deck in memory as cards are rated but never calls
// the store itself; on completion the caller takes the deck back and decides
// whether to persist it. Discarding a session without persisting is the
// cancellation model, no explicit signal needed.
package review

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/domain/srs"
)

// State identifies where a session is in its lifecycle.
type State string

// Session states. A session moves AwaitingReveal -> AwaitingRating ->
// AwaitingReveal (next card) ... -> Complete.
const (
	StateAwaitingReveal State = "awaiting_reveal"
	StateAwaitingRating State = "awaiting_rating"
	StateComplete       State = "complete"
)

// Common session errors.
var (
	// ErrEmptyDeck is returned when starting a session over a deck with no
	// cards.
	ErrEmptyDeck = errors.New("deck has no cards to review")

	// ErrSessionComplete is returned when a card is requested from a
	// session that has already finished.
	ErrSessionComplete = errors.New("review session is complete")

	// ErrInvalidTransition is returned when Reveal or Rate is called in the
	// wrong state. This is a contract violation by the caller, not a
	// recoverable condition; callers must not retry silently.
	ErrInvalidTransition = errors.New("invalid session state transition")
)

// Session walks one deck, front first, back on reveal, rating last.
type Session struct {
	id        uuid.UUID
	deck      *domain.Deck
	scheduler srs.Service

	state      State
	index      int
	cardsRated int

	startedAt  time.Time
	finishedAt time.Time
	now        func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the session's time source. Tests use this to make
// scheduling deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Start begins a review session over deck. Returns ErrEmptyDeck if the deck
// has no cards. The session holds the deck by reference and updates its
// cards in place as they are rated.
func Start(deck *domain.Deck, scheduler srs.Service, opts ...Option) (*Session, error) {
	if deck == nil || deck.Len() == 0 {
		return nil, ErrEmptyDeck
	}
	if scheduler == nil {
		scheduler = srs.NewDefaultService()
	}

	s := &Session{
		id:        uuid.New(),
		deck:      deck,
		scheduler: scheduler,
		state:     StateAwaitingReveal,
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	s.startedAt = s.now()
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// IsComplete reports whether every card has been rated.
func (s *Session) IsComplete() bool {
	return s.state == StateComplete
}

// CurrentCard returns the card currently under review.
// Returns ErrSessionComplete once the session has finished.
func (s *Session) CurrentCard() (*domain.Flashcard, error) {
	if s.state == StateComplete {
		return nil, ErrSessionComplete
	}
	return &s.deck.Cards[s.index], nil
}

// Reveal flips the current card, transitioning AwaitingReveal ->
// AwaitingRating, and returns the card's back text.
// Returns ErrInvalidTransition in any other state.
func (s *Session) Reveal() (string, error) {
	if s.state != StateAwaitingReveal {
		return "", fmt.Errorf("%w: reveal in state %q", ErrInvalidTransition, s.state)
	}

	s.state = StateAwaitingRating
	return s.deck.Cards[s.index].Back, nil
}

// Rate records the difficulty for the revealed card, applies the scheduler
// to it, and advances to the next card. After the last card the session
// transitions to Complete.
// Returns ErrInvalidTransition unless the session is in AwaitingRating, and
// domain.ErrInvalidDifficulty for a rating outside easy/ok/hard; in both
// cases the session state is unchanged.
func (s *Session) Rate(difficulty domain.Difficulty) error {
	if s.state != StateAwaitingRating {
		return fmt.Errorf("%w: rate in state %q", ErrInvalidTransition, s.state)
	}

	updated, err := s.scheduler.ApplyReview(s.deck.Cards[s.index], difficulty, s.now())
	if err != nil {
		return err
	}

	s.deck.Cards[s.index] = updated
	s.cardsRated++
	s.index++

	if s.index >= s.deck.Len() {
		s.state = StateComplete
		s.finishedAt = s.now()
		return nil
	}

	s.state = StateAwaitingReveal
	return nil
}

// Deck hands back the session's deck, including every scheduling update
// applied so far. Callers persist it; the session never does.
func (s *Session) Deck() *domain.Deck {
	return s.deck
}

// CardsRated returns how many cards have been rated so far.
func (s *Session) CardsRated() int {
	return s.cardsRated
}

// Elapsed returns the time spent in the session: up to now while running,
// frozen at the completing Rate call afterwards. It feeds
// User.RecordSession.
func (s *Session) Elapsed() time.Duration {
	if s.state == StateComplete {
		return s.finishedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}
