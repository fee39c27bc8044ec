package store

import "encoraja/pkg/domain"

// Store defines persistence operations for users, cards and reactions.
// Both backends implement the same minimal CRUD surface: lookups report
// absence with a false flag, never an error, and no operation performs a
// partial update or a delete.
type Store interface {
	// users
	CreateUser(u domain.User) (domain.User, error)
	FindUserByEmail(email string) (domain.User, bool, error)
	FindUserByUsername(username string) (domain.User, bool, error)
	FindUserByPhone(phoneNumber string) (domain.User, bool, error)
	FindUserByID(id string) (domain.User, bool, error)

	// cards
	CreateCard(c domain.Card) (domain.Card, error)
	GetCard(id string) (domain.Card, bool, error)
	GetUserCards(userID string) ([]domain.Card, error)
	IncrementCardViews(id string) error

	// reactions
	AddReaction(r domain.Reaction) error
}

// SessionStore issues and validates session tokens bound to a user id.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
