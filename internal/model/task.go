package model

import "time"

// Task represents a task record in the database. OwnerID is assigned at
// creation from the authenticated caller and never changes.
type Task struct {
	ID            int64
	Title         string
	Description   string
	Completed     bool
	OwnerID       int64
	OwnerUsername string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateTaskRequest represents a task creation request. Any owner field in
// the body is ignored; ownership comes from the access token.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskRequest represents a task update. Nil fields are left unchanged,
// so the same shape serves both PUT and PATCH.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse represents task data for API responses. Owner is the owning
// user's username, not their numeric ID.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts a Task to its API representation.
func (t *Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Owner:       t.OwnerUsername,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TasksToResponse converts a slice of tasks to API representations.
// It always returns a non-nil slice so an empty list serializes as [].
func TasksToResponse(tasks []Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = tasks[i].ToResponse()
	}
	return result
}
