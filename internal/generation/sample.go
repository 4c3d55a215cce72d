// Package generation creates decks of flashcards. The only generator today
// builds sample decks of random arithmetic pairs, which gives a fresh
// installation something to practice with.
package generation

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/murermader/flashcards/internal/domain"
)

// ErrInvalidLength is returned when a sample deck is requested with a
// non-positive card count.
var ErrInvalidLength = errors.New("sample deck length must be at least 1")

// SampleDeck builds a deck of length random number-pair cards for owner.
// Card fronts are random values in [1, 50], backs in [1, 100].
func SampleDeck(name, owner string, length int) (*domain.Deck, error) {
	if length < 1 {
		return nil, ErrInvalidLength
	}

	deck, err := domain.NewDeck(name, owner)
	if err != nil {
		return nil, err
	}

	for i := 0; i < length; i++ {
		front := fmt.Sprintf("%d", rand.Intn(50)+1)
		back := fmt.Sprintf("%d", rand.Intn(100)+1)

		card, err := domain.NewFlashcard(front, back)
		if err != nil {
			return nil, err
		}

		if err := deck.AddCard(*card); err != nil {
			return nil, err
		}
	}

	return deck, nil
}
