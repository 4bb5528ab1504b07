package models

import "time"

// User represents an account that owns trips
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	SavedFilters string    `json:"-" db:"saved_filters"` // JSON map layer state
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Credentials is the body of register and login requests
type Credentials struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
	UserID    int64  `json:"user_id"`
}

// MapFilters is the persisted map layer state of a user
type MapFilters struct {
	HiddenTrips []int64 `json:"hidden_trips"`
}
