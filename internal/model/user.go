package model

import (
	"time"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusLocked   = "locked"
)

// User represents a staff member of the practice who signs in to the intake
// tool. Prospective clients never have accounts; they live in the clients table.
type User struct {
	Base
	Email            string    `json:"email" db:"email"`
	Name             string    `json:"name" db:"name"`
	Password         string    `json:"password,omitempty" db:"-"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Status           string    `json:"status" db:"status"`
	LoginAttempts    int       `json:"login_attempts" db:"login_attempts"`
	LastLoginAttempt time.Time `json:"last_login_attempt" db:"last_login_attempt"`
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
