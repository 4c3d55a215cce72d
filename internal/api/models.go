package api

// Request payloads for the command surface. Validation tags are enforced
// with go-playground/validator before any core call.

// CreateDeckRequest is the payload for POST /decks.
type CreateDeckRequest struct {
	Name  string `json:"name"  validate:"required"`
	Owner string `json:"owner" validate:"required"`
}

// SampleDeckRequest is the payload for POST /decks/sample.
type SampleDeckRequest struct {
	Name   string `json:"name"   validate:"required"`
	Owner  string `json:"owner"  validate:"required"`
	Length int    `json:"length" validate:"required,gt=0,lte=1000"`
}

// RenameDeckRequest is the payload for PATCH /decks/{name}.
type RenameDeckRequest struct {
	NewName string `json:"new_name" validate:"required"`
}

// AddCardRequest is the payload for POST /decks/{name}/cards.
type AddCardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back"  validate:"required"`
}

// EditCardRequest is the payload for PUT /decks/{name}/cards/{cardID}.
type EditCardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back"  validate:"required"`
}

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Name string `json:"name" validate:"required"`
}

// StartSessionRequest is the payload for POST /sessions.
type StartSessionRequest struct {
	Deck string `json:"deck" validate:"required"`
}

// RateCardRequest is the payload for POST /sessions/{id}/rate.
type RateCardRequest struct {
	Difficulty string `json:"difficulty" validate:"required,oneof=easy ok hard"`
}

// DeckListResponse is the response for GET /decks.
type DeckListResponse struct {
	Decks []string `json:"decks"`
}

// SessionResponse describes a session's visible state. Back is only set
// once the current card has been revealed.
type SessionResponse struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	Deck       string `json:"deck"`
	Front      string `json:"front,omitempty"`
	Back       string `json:"back,omitempty"`
	CardsRated int    `json:"cards_rated"`
	CardsTotal int    `json:"cards_total"`
}
