package service

import (
	"testing"

	"github.com/tasktrack/tasktrack-go/internal/model"
)

func TestCanModify(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		task   model.Task
		want   bool
	}{
		{
			name:   "owner can modify own task",
			caller: Caller{ID: 1},
			task:   model.Task{OwnerID: 1},
			want:   true,
		},
		{
			name:   "non-owner cannot modify",
			caller: Caller{ID: 2},
			task:   model.Task{OwnerID: 1},
			want:   false,
		},
		{
			name:   "admin can modify any task",
			caller: Caller{ID: 2, IsAdmin: true},
			task:   model.Task{OwnerID: 1},
			want:   true,
		},
		{
			name:   "admin can modify own task",
			caller: Caller{ID: 1, IsAdmin: true},
			task:   model.Task{OwnerID: 1},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(tt.caller, &tt.task); got != tt.want {
				t.Errorf("CanModify() = %v, want %v", got, tt.want)
			}
		})
	}
}
