package repository

import (
	"context"
	"time"

	"github.com/tasktrack/tasktrack-go/internal/model"
)

// Users defines the interface for user persistence operations.
type Users interface {
	// Create inserts a new user and sets the generated ID on the struct.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByUsername retrieves a user by their unique username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// Tasks defines the interface for task persistence operations.
type Tasks interface {
	// Create inserts a new task and sets the generated ID on the struct.
	Create(ctx context.Context, task *model.Task) error

	// GetByID retrieves a task by ID regardless of owner. Used by mutating
	// routes, which apply the ownership policy after the lookup.
	GetByID(ctx context.Context, id int64) (*model.Task, error)

	// GetOwned retrieves a task by ID scoped to the given owner. A task
	// owned by someone else is indistinguishable from an absent one.
	GetOwned(ctx context.Context, ownerID, id int64) (*model.Task, error)

	// ListByOwner returns all tasks owned by the given user.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error)

	// Update persists changes to the task's mutable fields.
	Update(ctx context.Context, task *model.Task) error

	// Delete removes a task by ID.
	Delete(ctx context.Context, id int64) error
}

// TokenBlacklist records revoked refresh token identifiers until they would
// have expired anyway.
type TokenBlacklist interface {
	// Add records a token ID as revoked for the given duration.
	Add(ctx context.Context, tokenID string, ttl time.Duration) error

	// Contains reports whether a token ID has been revoked.
	Contains(ctx context.Context, tokenID string) (bool, error)
}
