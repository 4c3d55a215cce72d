package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckNameEmpty is returned when a deck's name is empty.
	// A deck without a name has no file stem and must never be persisted.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckOwnerEmpty is returned when a deck's owner is empty.
	ErrDeckOwnerEmpty = errors.New("deck owner cannot be empty")

	// ErrCardNotInDeck is returned when a card ID does not match any card
	// in the deck.
	ErrCardNotInDeck = errors.New("card not found in deck")
)

// Deck is a named, owned, ordered collection of Flashcards. Insertion order
// is the default study order; removing a card preserves the relative order
// of the remaining cards.
//
// The deck exclusively owns its cards. The owner relationship to a User is
// by matching name, not by reference.
type Deck struct {
	Name  string      `json:"name"`
	Owner string      `json:"owner"`
	Cards []Flashcard `json:"cards"`
}

// NewDeck creates a new empty Deck for the given owner.
// Returns an error if validation fails.
func NewDeck(name, owner string) (*Deck, error) {
	deck := &Deck{
		Name:  name,
		Owner: owner,
		Cards: []Flashcard{},
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	if d.Owner == "" {
		return ErrDeckOwnerEmpty
	}

	return nil
}

// AddCard appends a card to the end of the deck.
func (d *Deck) AddCard(card Flashcard) error {
	if err := card.Validate(); err != nil {
		return err
	}

	d.Cards = append(d.Cards, card)
	return nil
}

// RemoveCard removes the card with the given ID, preserving the order of
// the remaining cards. Returns ErrCardNotInDeck if no card matches.
func (d *Deck) RemoveCard(id uuid.UUID) error {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
			return nil
		}
	}
	return ErrCardNotInDeck
}

// EditCard replaces the front and back text of the card with the given ID.
// Returns ErrCardNotInDeck if no card matches.
func (d *Deck) EditCard(id uuid.UUID, front, back string) error {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return d.Cards[i].EditContent(front, back)
		}
	}
	return ErrCardNotInDeck
}

// CardByFront returns the first card whose front text matches exactly.
// Fronts are not unique; callers that need a specific card should address
// it by ID instead.
func (d *Deck) CardByFront(front string) (*Flashcard, bool) {
	for i := range d.Cards {
		if d.Cards[i].Front == front {
			return &d.Cards[i], true
		}
	}
	return nil, false
}

// Rename changes the deck's name. The store treats the name as the file
// stem, so callers renaming a persisted deck must save under the new name
// and delete the old file.
func (d *Deck) Rename(newName string) error {
	if newName == "" {
		return ErrDeckNameEmpty
	}

	d.Name = newName
	return nil
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.Cards)
}
