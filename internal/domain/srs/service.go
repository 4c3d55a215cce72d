package srs

import (
	"time"

	"github.com/murermader/flashcards/internal/domain"
)

// Service defines the interface for the review scheduler.
type Service interface {
	// ApplyReview computes a card's new scheduling state from a difficulty
	// rating. It returns a new Flashcard value and never mutates the input.
	// Returns domain.ErrInvalidDifficulty if the rating is not one of
	// easy, ok, or hard.
	ApplyReview(
		card domain.Flashcard,
		difficulty domain.Difficulty,
		now time.Time,
	) (domain.Flashcard, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduler with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduler with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyReview implements the Service interface.
func (s *defaultService) ApplyReview(
	card domain.Flashcard,
	difficulty domain.Difficulty,
	now time.Time,
) (domain.Flashcard, error) {
	if !difficulty.Valid() {
		return domain.Flashcard{}, domain.ErrInvalidDifficulty
	}

	return calculateNextCard(card, difficulty, now, s.params), nil
}
