package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tasktrack/tasktrack-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// taskColumns is the shared SELECT column list, joining users for the owner's
// username so responses never need a second lookup.
const taskColumns = `t.id, t.title, t.description, t.completed, t.owner_id, u.username,
	t.created_at, t.updated_at`

// TaskRepository handles task persistence operations backed by MySQL.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task and sets the generated ID on the task struct.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (title, description, completed, owner_id) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, task.Title, task.Description, task.Completed, task.OwnerID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetByID retrieves a task by ID regardless of its owner.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t JOIN users u ON u.id = t.owner_id
		WHERE t.id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetOwned retrieves a task by ID scoped to the given owner.
func (r *TaskRepository) GetOwned(ctx context.Context, ownerID, id int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t JOIN users u ON u.id = t.owner_id
		WHERE t.id = ? AND t.owner_id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}

// ListByOwner retrieves all tasks owned by a user, most recently created first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = ? ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID,
			&t.OwnerUsername, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Update persists the task's mutable fields. The owner is never touched.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, completed = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, task.Title, task.Description, task.Completed, task.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// The row may exist with identical values; confirm before reporting absence.
		if _, err := r.GetByID(ctx, task.ID); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a task by ID.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) scanOne(row *sql.Row) (*model.Task, error) {
	task := &model.Task{}
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Completed, &task.OwnerID,
		&task.OwnerUsername, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}
