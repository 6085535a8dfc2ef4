package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated identity for the current session. The
// engine never creates principals; they arrive from the external identity
// provider via signed tokens.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// JWT claims structure

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() Principal {
	return Principal{ID: c.UserID, Email: c.Email}
}
