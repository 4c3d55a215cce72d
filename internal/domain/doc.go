// Package domain contains the core entities of the flashcards application:
// Flashcard, Deck, and User, together with their validation rules.
//
// Entities here are plain data with behavior; they never touch the
// filesystem. Persistence belongs to the store packages, scheduling to
// the srs subpackage.
package domain
