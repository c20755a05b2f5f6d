package model

import (
	"time"

	"github.com/google/uuid"
)

// Team roles
const (
	RoleLeader = "Leader" // full control over projects, tasks and the team
	RoleMember = "Member" // may only view/manage tasks assigned to themselves
)

// ValidRole reports whether s is one of the two supported roles.
func ValidRole(s string) bool {
	return s == RoleLeader || s == RoleMember
}

type Member struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	Name           string    `gorm:"not null" json:"name"`
	Role           string    `gorm:"not null;check:role IN ('Leader', 'Member')" json:"role"`
	Title          string    `json:"title,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
