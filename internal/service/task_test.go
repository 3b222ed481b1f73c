package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-go/internal/model"
	"github.com/tasktrack/tasktrack-go/internal/repository"
)

// --- Mock task repository ---

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *mockTaskRepo) GetOwned(ctx context.Context, ownerID, id int64) (*model.Task, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *mockTaskRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *mockTaskRepo) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// --- Create ---

func TestCreateTask_OwnerComesFromCaller(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.OwnerID == 7 && task.Title == "Test Task"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Task).ID = 3
	}).Return(nil)
	tasks.On("GetByID", mock.Anything, int64(3)).Return(&model.Task{
		ID:            3,
		Title:         "Test Task",
		OwnerID:       7,
		OwnerUsername: "alice",
	}, nil)

	created, err := svc.Create(context.Background(), Caller{ID: 7}, model.CreateTaskRequest{
		Title:       "Test Task",
		Description: "something to do",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.OwnerID)
	assert.Equal(t, "alice", created.OwnerUsername)
	tasks.AssertExpectations(t)
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	_, err := svc.Create(context.Background(), Caller{ID: 7}, model.CreateTaskRequest{
		Title: "   ",
	})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "title")
	tasks.AssertNotCalled(t, "Create")
}

// --- Get (owner scoping) ---

func TestGetTask_ForeignTaskReadsAsNotFound(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	// The scoped query cannot see another user's task at all.
	tasks.On("GetOwned", mock.Anything, int64(2), int64(9)).Return(nil, repository.ErrTaskNotFound)

	_, err := svc.Get(context.Background(), Caller{ID: 2}, 9)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

// --- Update ---

func TestUpdateTask_NonOwnerForbidden(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	tasks.On("GetByID", mock.Anything, int64(9)).Return(&model.Task{ID: 9, OwnerID: 1}, nil)

	_, err := svc.Update(context.Background(), Caller{ID: 2}, 9, model.UpdateTaskRequest{
		Completed: boolPtr(true),
	})

	assert.ErrorIs(t, err, ErrForbidden)
	tasks.AssertNotCalled(t, "Update")
}

func TestUpdateTask_AdminSucceedsOnForeignTask(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	existing := &model.Task{ID: 9, Title: "old", OwnerID: 1, OwnerUsername: "alice"}
	tasks.On("GetByID", mock.Anything, int64(9)).Return(existing, nil)
	tasks.On("Update", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.ID == 9 && task.Completed && task.OwnerID == 1
	})).Return(nil)

	updated, err := svc.Update(context.Background(), Caller{ID: 2, IsAdmin: true}, 9, model.UpdateTaskRequest{
		Completed: boolPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.OwnerID, "update must never reassign ownership")
}

func TestUpdateTask_PartialUpdateKeepsOtherFields(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	existing := &model.Task{ID: 9, Title: "old title", Description: "old desc", OwnerID: 7}
	tasks.On("GetByID", mock.Anything, int64(9)).Return(existing, nil)
	tasks.On("Update", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "new title" && task.Description == "old desc"
	})).Return(nil)

	_, err := svc.Update(context.Background(), Caller{ID: 7}, 9, model.UpdateTaskRequest{
		Title: strPtr("new title"),
	})

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestUpdateTask_Missing(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	tasks.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrTaskNotFound)

	_, err := svc.Update(context.Background(), Caller{ID: 7}, 404, model.UpdateTaskRequest{})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

// --- Delete ---

func TestDeleteTask_NonOwnerForbidden(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	tasks.On("GetByID", mock.Anything, int64(9)).Return(&model.Task{ID: 9, OwnerID: 1}, nil)

	err := svc.Delete(context.Background(), Caller{ID: 2}, 9)
	assert.ErrorIs(t, err, ErrForbidden)
	tasks.AssertNotCalled(t, "Delete")
}

func TestDeleteTask_OwnerSucceeds(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	tasks.On("GetByID", mock.Anything, int64(9)).Return(&model.Task{ID: 9, OwnerID: 7}, nil)
	tasks.On("Delete", mock.Anything, int64(9)).Return(nil)

	err := svc.Delete(context.Background(), Caller{ID: 7}, 9)
	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestDeleteTask_AdminSucceeds(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	tasks.On("GetByID", mock.Anything, int64(9)).Return(&model.Task{ID: 9, OwnerID: 1}, nil)
	tasks.On("Delete", mock.Anything, int64(9)).Return(nil)

	err := svc.Delete(context.Background(), Caller{ID: 99, IsAdmin: true}, 9)
	require.NoError(t, err)
}

// --- List ---

func TestListTasks_ScopedToCaller(t *testing.T) {
	tasks := new(mockTaskRepo)
	svc := NewTaskService(tasks, testLogger())

	tasks.On("ListByOwner", mock.Anything, int64(7)).Return([]model.Task{
		{ID: 1, OwnerID: 7}, {ID: 2, OwnerID: 7},
	}, nil)

	got, err := svc.List(context.Background(), Caller{ID: 7})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
