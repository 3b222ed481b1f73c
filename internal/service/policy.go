package service

import "github.com/tasktrack/tasktrack-go/internal/model"

// CanModify decides whether a caller may update or delete a task: admins may
// modify any task, everyone else only their own. Reads never reach this
// check because list and get queries are already scoped to the caller.
func CanModify(caller Caller, task *model.Task) bool {
	return caller.IsAdmin || task.OwnerID == caller.ID
}
