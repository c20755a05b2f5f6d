package model

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses
const (
	ProjectPlanned   = "Planned"
	ProjectOngoing   = "Ongoing"
	ProjectCompleted = "Completed"
	ProjectOverdue   = "Overdue"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectPlanned, ProjectOngoing, ProjectCompleted, ProjectOverdue:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	Status      string    `gorm:"not null;default:'Planned'" json:"status"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	// Progress is derived from the project's tasks and recomputed on every
	// task write. Never set it directly.
	Progress  int       `gorm:"not null;default:0" json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator Member `gorm:"foreignKey:CreatedBy" json:"-"`

	// TeamMemberIDs is populated from the project_members join table by the
	// repository (and stored directly by the local store). It is not a column.
	TeamMemberIDs []uuid.UUID `gorm:"-" json:"team_member_ids"`
}

// HasMember reports whether the given member belongs to the project's team.
func (p *Project) HasMember(id uuid.UUID) bool {
	for _, m := range p.TeamMemberIDs {
		if m == id {
			return true
		}
	}
	return false
}
