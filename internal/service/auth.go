package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/tasktrack/tasktrack-go/internal/crypto"
	"github.com/tasktrack/tasktrack-go/internal/model"
	"github.com/tasktrack/tasktrack-go/internal/repository"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenRequired = errors.New("refresh token is required")
)

// minPasswordLength is the minimum password length accepted at registration.
const minPasswordLength = 8

// commonPasswords are rejected outright regardless of length.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"qwerty123":   {},
	"letmein123":  {},
	"iloveyou1":   {},
}

// FieldErrors is a validation failure carrying per-field error messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation failed"
}

// AuthService handles registration, login, and the refresh token lifecycle.
type AuthService struct {
	users     repository.Users
	blacklist repository.TokenBlacklist
	tokens    *crypto.TokenManager
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.Users, blacklist repository.TokenBlacklist, tokens *crypto.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		blacklist: blacklist,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new user account with a hashed password.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, FieldErrors{"username": "A user with that username already exists."}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenPairResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))

	return &model.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid, non-blacklisted refresh token for a new access
// token. The refresh token itself is not rotated and stays usable until it
// expires or is blacklisted by logout.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrRefreshTokenRequired
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked {
		return "", ErrInvalidRefreshToken
	}

	// Re-read the user so the new access token carries their current admin flag.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("look up user for refresh: %w", err)
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return access, nil
}

// Logout blacklists a refresh token so it can no longer be exchanged.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrRefreshTokenRequired
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked {
		return ErrInvalidRefreshToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Add(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	s.logger.InfoContext(ctx, "refresh token revoked", slog.Int64("user_id", claims.UserID))

	return nil
}

// validateRegistration checks the registration request, collecting per-field
// errors so the client sees every problem at once.
func validateRegistration(req model.RegisterRequest) error {
	fields := FieldErrors{}

	if strings.TrimSpace(req.Username) == "" {
		fields["username"] = "Username is required."
	}

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			fields["email"] = "Enter a valid email address."
		}
	}

	if req.Password != req.Password2 {
		fields["password"] = "Passwords do not match."
	} else if msg := passwordWeakness(req.Password); msg != "" {
		fields["password"] = msg
	}

	if len(fields) > 0 {
		return fields
	}
	return nil
}

// passwordWeakness returns a human-readable reason the password is too weak,
// or the empty string if it is acceptable.
func passwordWeakness(password string) string {
	if len(password) < minPasswordLength {
		return fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength)
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return "This password is too common."
	}

	numericOnly := true
	for _, ch := range password {
		if !unicode.IsDigit(ch) {
			numericOnly = false
			break
		}
	}
	if numericOnly {
		return "This password is entirely numeric."
	}

	return ""
}
