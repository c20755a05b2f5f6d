package model

import "github.com/google/uuid"

// Viewer is the currently authenticated identity used for visibility and
// authorization checks. It is always rebuilt from the Member record, never
// from cached name/role snapshots, so a role edit takes effect immediately.
type Viewer struct {
	ID   uuid.UUID
	Role string
}

// ViewerFor builds a Viewer from a member record.
func ViewerFor(m *Member) Viewer {
	return Viewer{ID: m.ID, Role: m.Role}
}

// IsLeader reports whether the viewer holds the Leader role.
func (v Viewer) IsLeader() bool {
	return v.Role == RoleLeader
}

// Resolved reports whether the viewer's identity is known. An unresolved
// viewer must never see anyone's data.
func (v Viewer) Resolved() bool {
	return v.ID != uuid.Nil
}
