package review_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/domain/srs"
	"github.com/murermader/flashcards/internal/service/review"
)

func newTestDeck(t *testing.T, pairs ...[2]string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck("Spanish", "alice")
	require.NoError(t, err)
	for _, pair := range pairs {
		card, err := domain.NewFlashcard(pair[0], pair[1])
		require.NoError(t, err)
		require.NoError(t, deck.AddCard(*card))
	}
	return deck
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestStartEmptyDeck(t *testing.T) {
	t.Parallel()

	deck, err := domain.NewDeck("Empty", "alice")
	require.NoError(t, err)

	_, err = review.Start(deck, srs.NewDefaultService())
	assert.ErrorIs(t, err, review.ErrEmptyDeck)

	_, err = review.Start(nil, srs.NewDefaultService())
	assert.ErrorIs(t, err, review.ErrEmptyDeck)
}

func TestSessionWalkthrough(t *testing.T) {
	t.Parallel()

	// The canonical two-card pass: front, reveal, rate, next card.
	deck := newTestDeck(t, [2]string{"hola", "hello"}, [2]string{"adios", "bye"})
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	session, err := review.Start(deck, srs.NewDefaultService(), review.WithClock(fixedClock(now)))
	require.NoError(t, err)
	assert.Equal(t, review.StateAwaitingReveal, session.State())

	card, err := session.CurrentCard()
	require.NoError(t, err)
	assert.Equal(t, "hola", card.Front)

	back, err := session.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "hello", back)
	assert.Equal(t, review.StateAwaitingRating, session.State())

	require.NoError(t, session.Rate(domain.DifficultyEasy))

	// Easy doubles the interval: 1 -> 2.
	assert.Equal(t, 2, deck.Cards[0].IntervalDays)
	assert.Equal(t, domain.DifficultyEasy, deck.Cards[0].Difficulty)
	assert.True(t, deck.Cards[0].DueAt.Equal(now.AddDate(0, 0, 2)))

	// Session has advanced to card 2, awaiting reveal again.
	assert.Equal(t, review.StateAwaitingReveal, session.State())
	card, err = session.CurrentCard()
	require.NoError(t, err)
	assert.Equal(t, "adios", card.Front)
	assert.False(t, session.IsComplete())
}

func TestSessionCompletesAfterExactlyNRatings(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t,
		[2]string{"uno", "one"},
		[2]string{"dos", "two"},
		[2]string{"tres", "three"},
	)

	session, err := review.Start(deck, srs.NewDefaultService())
	require.NoError(t, err)

	for i := 0; i < deck.Len(); i++ {
		assert.False(t, session.IsComplete(), "complete after only %d ratings", i)
		_, err := session.Reveal()
		require.NoError(t, err)
		require.NoError(t, session.Rate(domain.DifficultyOk))
	}

	assert.True(t, session.IsComplete())
	assert.Equal(t, deck.Len(), session.CardsRated())

	// No further transitions are possible.
	_, err = session.Reveal()
	assert.ErrorIs(t, err, review.ErrInvalidTransition)
	err = session.Rate(domain.DifficultyOk)
	assert.ErrorIs(t, err, review.ErrInvalidTransition)
	_, err = session.CurrentCard()
	assert.ErrorIs(t, err, review.ErrSessionComplete)
}

func TestSessionDoubleRevealFails(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t, [2]string{"hola", "hello"})
	session, err := review.Start(deck, srs.NewDefaultService())
	require.NoError(t, err)

	_, err = session.Reveal()
	require.NoError(t, err)

	_, err = session.Reveal()
	assert.ErrorIs(t, err, review.ErrInvalidTransition)

	// The failed reveal must not have broken the session.
	assert.Equal(t, review.StateAwaitingRating, session.State())
	require.NoError(t, session.Rate(domain.DifficultyHard))
}

func TestSessionRateBeforeRevealFails(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t, [2]string{"hola", "hello"})
	session, err := review.Start(deck, srs.NewDefaultService())
	require.NoError(t, err)

	err = session.Rate(domain.DifficultyEasy)
	assert.ErrorIs(t, err, review.ErrInvalidTransition)
	assert.Equal(t, review.StateAwaitingReveal, session.State())
}

func TestSessionInvalidDifficultyKeepsState(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t, [2]string{"hola", "hello"})
	session, err := review.Start(deck, srs.NewDefaultService())
	require.NoError(t, err)

	_, err = session.Reveal()
	require.NoError(t, err)

	err = session.Rate("medium")
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)

	// Still awaiting a valid rating; the card is untouched.
	assert.Equal(t, review.StateAwaitingRating, session.State())
	assert.Equal(t, domain.DifficultyUnset, deck.Cards[0].Difficulty)
	require.NoError(t, session.Rate(domain.DifficultyOk))
}

func TestSessionElapsed(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t, [2]string{"hola", "hello"})

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	session, err := review.Start(deck, srs.NewDefaultService(), review.WithClock(clock))
	require.NoError(t, err)

	current = current.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, session.Elapsed())

	_, err = session.Reveal()
	require.NoError(t, err)
	current = current.Add(30 * time.Second)
	require.NoError(t, session.Rate(domain.DifficultyOk))

	require.True(t, session.IsComplete())
	assert.Equal(t, 2*time.Minute, session.Elapsed())

	// Elapsed is frozen once complete.
	current = current.Add(time.Hour)
	assert.Equal(t, 2*time.Minute, session.Elapsed())
}

func TestSessionHandsBackMutatedDeck(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t, [2]string{"hola", "hello"}, [2]string{"adios", "bye"})
	session, err := review.Start(deck, srs.NewDefaultService())
	require.NoError(t, err)

	for !session.IsComplete() {
		_, err := session.Reveal()
		require.NoError(t, err)
		require.NoError(t, session.Rate(domain.DifficultyEasy))
	}

	handed := session.Deck()
	assert.Same(t, deck, handed)
	for i := range handed.Cards {
		assert.Equal(t, domain.DifficultyEasy, handed.Cards[i].Difficulty)
		assert.Equal(t, 2, handed.Cards[i].IntervalDays)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := review.NewRegistry()
	deck := newTestDeck(t, [2]string{"hola", "hello"})

	session, err := review.Start(deck, srs.NewDefaultService())
	require.NoError(t, err)

	registry.Add(session)
	assert.Equal(t, 1, registry.Len())

	got, err := registry.Get(session.ID())
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = registry.Get(uuid.New())
	assert.ErrorIs(t, err, review.ErrSessionNotFound)

	registry.Remove(session.ID())
	assert.Equal(t, 0, registry.Len())
	_, err = registry.Get(session.ID())
	assert.ErrorIs(t, err, review.ErrSessionNotFound)

	// Removing again is harmless.
	registry.Remove(session.ID())
}
