package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns leads
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never exposed in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

// CredentialsRequest is the body of a register call
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the body of a login call. Password rules are not re-checked
// here so a short password fails like any other wrong one.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
