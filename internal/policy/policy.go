// Package policy decides which mutations a viewer's role permits.
package policy

import (
	"errors"
	"fmt"

	"teamtrack/internal/model"

	"github.com/google/uuid"
)

// Action names a mutation or privileged read subject to role checks.
type Action string

const (
	ActionCreateProject Action = "create project"
	ActionUpdateProject Action = "update project"
	ActionDeleteProject Action = "delete project"
	ActionManageTeam    Action = "manage team"
	ActionCreateTask    Action = "create task"
	ActionUpdateTask    Action = "update task"
	ActionDeleteTask    Action = "delete task"
	ActionReassignTask  Action = "reassign task"
)

// ErrForbidden is the sentinel all policy denials unwrap to.
var ErrForbidden = errors.New("forbidden")

// DeniedError explains which action was denied and why. It is never a
// silent no-op: handlers turn it into a 403 with the reason attached.
type DeniedError struct {
	Action Action
	Reason string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s denied: %s", e.Action, e.Reason)
}

func (e *DeniedError) Unwrap() error {
	return ErrForbidden
}

func deny(action Action, reason string) error {
	return &DeniedError{Action: action, Reason: reason}
}

// Authorize checks whether the viewer may perform action. For task-scoped
// actions the task must be supplied; project and team actions ignore it.
func Authorize(viewer model.Viewer, action Action, task *model.Task) error {
	if viewer.IsLeader() {
		return nil
	}
	if !viewer.Resolved() {
		return deny(action, "not authenticated")
	}

	switch action {
	case ActionCreateProject, ActionUpdateProject, ActionDeleteProject:
		return deny(action, "Leader role required")
	case ActionManageTeam:
		return deny(action, "Leader role required")
	case ActionCreateTask:
		return nil
	case ActionUpdateTask, ActionDeleteTask:
		if task == nil {
			return deny(action, "no task")
		}
		if !task.AssignedTo(viewer.ID) {
			return deny(action, "task is assigned to someone else")
		}
		return nil
	case ActionReassignTask:
		return deny(action, "Leader role required")
	default:
		return deny(action, "unknown action")
	}
}

// ResolveAssignee applies the assignment rule to a requested assignee: a
// Leader may assign anyone (or nobody), a Member is always forced back to
// themselves. The product treats a Member supplying someone else as an
// override, not an error; overridden tells the caller to surface it.
func ResolveAssignee(viewer model.Viewer, requested *uuid.UUID) (assignee *uuid.UUID, overridden bool) {
	if viewer.IsLeader() {
		return requested, false
	}
	self := viewer.ID
	if requested == nil || *requested == self {
		return &self, false
	}
	return &self, true
}
