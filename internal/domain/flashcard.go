package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Difficulty represents a user's self-assessment of a card review.
type Difficulty string

// Possible difficulty values. DifficultyUnset is only valid before a card's
// first review; it is never a valid rating.
const (
	DifficultyUnset Difficulty = "unset"
	DifficultyEasy  Difficulty = "easy"
	DifficultyOk    Difficulty = "ok"
	DifficultyHard  Difficulty = "hard"
)

// DefaultIntervalDays is the scheduling baseline for a freshly created card.
const DefaultIntervalDays = 1

// Flashcard-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = errors.New("card back cannot be empty")

	// ErrCardIntervalInvalid is returned when a card's interval is below one day.
	ErrCardIntervalInvalid = errors.New("card interval must be at least 1 day")

	// ErrInvalidDifficulty is returned when a difficulty value is not one of
	// the defined constants.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// Flashcard is the atomic study unit: a front/back text pair plus the
// scheduling state maintained by the srs package.
//
// Each card carries a stable UUID assigned at creation so that removal and
// edits address a specific card even when two cards share identical front
// text.
type Flashcard struct {
	ID             uuid.UUID  `json:"id"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	Difficulty     Difficulty `json:"difficulty"`
	IntervalDays   int        `json:"interval_days"`
	LastReviewedAt time.Time  `json:"last_reviewed_at"`
	DueAt          time.Time  `json:"due_at"`
}

// NewFlashcard creates a new Flashcard with the given front and back text.
// It generates a new UUID for the card ID and initializes the scheduling
// state: difficulty unset, interval at the default baseline.
// Returns an error if validation fails.
func NewFlashcard(front, back string) (*Flashcard, error) {
	card := &Flashcard{
		ID:           uuid.New(),
		Front:        front,
		Back:         back,
		Difficulty:   DifficultyUnset,
		IntervalDays: DefaultIntervalDays,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	if c.Back == "" {
		return ErrCardBackEmpty
	}

	if c.IntervalDays < 1 {
		return ErrCardIntervalInvalid
	}

	if !c.Difficulty.Valid() && c.Difficulty != DifficultyUnset {
		return ErrInvalidDifficulty
	}

	return nil
}

// EditContent replaces the card's front and back text.
// Content is otherwise immutable; this is the one sanctioned mutation.
// Returns an error and leaves the card unchanged if the new content is invalid.
func (c *Flashcard) EditContent(front, back string) error {
	if front == "" {
		return ErrCardFrontEmpty
	}
	if back == "" {
		return ErrCardBackEmpty
	}

	c.Front = front
	c.Back = back
	return nil
}

// Valid reports whether d is a ratable difficulty (easy, ok, or hard).
// DifficultyUnset is deliberately excluded: it marks a card that has never
// been reviewed and must not be used as a rating.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyOk, DifficultyHard:
		return true
	default:
		return false
	}
}
