package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

// Task priorities
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether s is a known task priority.
func ValidPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	// ProjectID is nil for personal tasks that belong to no project.
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	Status      string     `gorm:"not null;default:'Pending'" json:"status"`
	Priority    string     `gorm:"not null;default:'Medium'" json:"priority"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Assignee *Member `gorm:"foreignKey:AssigneeID" json:"-"`
	Creator  Member  `gorm:"foreignKey:CreatedBy" json:"-"`
}

// AssignedTo reports whether the task is assigned to the given member.
func (t *Task) AssignedTo(id uuid.UUID) bool {
	return t.AssigneeID != nil && *t.AssigneeID == id
}
