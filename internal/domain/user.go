package domain

import (
	"errors"
	"time"
)

// User-specific validation errors
var (
	// ErrUserNameEmpty is returned when a user's name is empty.
	ErrUserNameEmpty = errors.New("user name cannot be empty")

	// ErrNegativeSessionStats is returned when session statistics would
	// move a counter backwards.
	ErrNegativeSessionStats = errors.New("session statistics cannot be negative")
)

// User aggregates study statistics over the decks a user owns. The deck
// relationship is by matching owner name; the counts here are caches
// recomputed from the decks on disk, never trusted as stored truth.
type User struct {
	Name              string        `json:"name"`
	NumberOfDecks     int           `json:"number_of_decks"`
	NumberOfCards     int           `json:"number_of_cards"`
	CardsLearned      int           `json:"cards_learned"`
	TimeSpentLearning time.Duration `json:"time_spent_learning"`
}

// NewUser creates a new User with the given name and zeroed statistics.
// Returns an error if validation fails.
func NewUser(name string) (*User, error) {
	user := &User{
		Name: name,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrUserNameEmpty
	}

	return nil
}

// RecordSession folds a finished review session into the user's statistics.
// Returns an error if either value is negative.
func (u *User) RecordSession(cardsRated int, elapsed time.Duration) error {
	if cardsRated < 0 || elapsed < 0 {
		return ErrNegativeSessionStats
	}

	u.CardsLearned += cardsRated
	u.TimeSpentLearning += elapsed
	return nil
}

// RecomputeCounts refreshes the derived deck and card counts from the decks
// owned by this user. Decks with a different owner are ignored.
func (u *User) RecomputeCounts(decks []*Deck) {
	numDecks := 0
	numCards := 0
	for _, deck := range decks {
		if deck == nil || deck.Owner != u.Name {
			continue
		}
		numDecks++
		numCards += deck.Len()
	}

	u.NumberOfDecks = numDecks
	u.NumberOfCards = numCards
}

// ResetTime zeroes the accumulated learning time.
func (u *User) ResetTime() {
	u.TimeSpentLearning = 0
}
