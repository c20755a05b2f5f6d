package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMember links a member to a project's team.
type ProjectMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Project Project `gorm:"foreignKey:ProjectID"`
	Member  Member  `gorm:"foreignKey:MemberID"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
