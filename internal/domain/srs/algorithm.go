package srs

import (
	"math"
	"time"

	"github.com/murermader/flashcards/internal/domain"
)

// calculateNewInterval determines the new interval in days based on the
// review difficulty and the card's current interval.
//
// Algorithm behavior:
//   - "hard" ratings multiply the interval by params.HardMultiplier and
//     truncate, so a struggling card grows slowly; the result is clamped to
//     params.MinIntervalDays and can therefore never fall below one day.
//   - "ok" ratings grow the interval linearly by params.OkIncrementDays.
//   - "easy" ratings multiply the interval by params.EasyMultiplier.
//
// A card that has never been reviewed enters this function with the default
// baseline interval (domain.DefaultIntervalDays), so the first rating is
// computed from that baseline regardless of the unset difficulty.
//
// The function is pure: identical inputs always yield identical outputs.
func calculateNewInterval(
	currentInterval int,
	difficulty domain.Difficulty,
	params *Params,
) int {
	var next int
	switch difficulty {
	case domain.DifficultyHard:
		next = int(math.Floor(float64(currentInterval) * params.HardMultiplier))
	case domain.DifficultyOk:
		next = currentInterval + params.OkIncrementDays
	case domain.DifficultyEasy:
		next = int(math.Floor(float64(currentInterval) * params.EasyMultiplier))
	default:
		next = currentInterval
	}

	if next < params.MinIntervalDays {
		next = params.MinIntervalDays
	}

	return next
}

// calculateNextCard creates a new Flashcard value with updated scheduling
// state after a review, following the immutable update pattern: the input
// card is never modified.
//
// The returned card carries the rated difficulty, the new interval, the
// review timestamp, and a due date of now plus the new interval in days.
func calculateNextCard(
	card domain.Flashcard,
	difficulty domain.Difficulty,
	now time.Time,
	params *Params,
) domain.Flashcard {
	next := card

	next.IntervalDays = calculateNewInterval(card.IntervalDays, difficulty, params)
	next.Difficulty = difficulty
	next.LastReviewedAt = now
	next.DueAt = now.AddDate(0, 0, next.IntervalDays)

	return next
}
