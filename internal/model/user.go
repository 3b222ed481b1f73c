package model

import "time"

// User represents a user account in the database.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request. Password must be
// entered twice and both values must match.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// TokenPairResponse wraps the signed access and refresh tokens returned by login.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessTokenResponse wraps the new access token returned by refresh.
type AccessTokenResponse struct {
	Access string `json:"access"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToResponse converts a User to its API representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
