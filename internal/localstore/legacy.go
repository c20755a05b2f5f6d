package localstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"teamtrack/internal/model"

	"github.com/google/uuid"
)

// Old browser exports used numeric ids, member names as task assignees, a
// "completed" boolean instead of a status, and "endDate" instead of a due
// date. decodeDocument accepts both shapes: canonical first, then a one-time
// legacy conversion. Anything else is corrupt.

// legacyID tolerates numeric and string ids.
type legacyID struct {
	raw string
}

func (l *legacyID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "null" {
		s = ""
	}
	l.raw = s
	return nil
}

func (l legacyID) empty() bool { return l.raw == "" }

// legacyDate tolerates RFC 3339 timestamps and bare "2006-01-02" dates.
type legacyDate struct {
	t time.Time
}

func (l *legacyDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			l.t = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

type legacyMember struct {
	ID        legacyID `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	Title     string   `json:"title"`
	AvatarURL string   `json:"avatarUrl"`
}

type legacyProject struct {
	ID        legacyID    `json:"id"`
	Name      string      `json:"name"`
	LeaderID  legacyID    `json:"leaderId"`
	MemberIDs []legacyID  `json:"memberIds"`
	Status    string      `json:"status"`
	StartDate *legacyDate `json:"startDate"`
	EndDate   *legacyDate `json:"endDate"`
}

type legacyTask struct {
	ID         legacyID    `json:"id"`
	ProjectID  legacyID    `json:"projectId"`
	Title      string      `json:"title"`
	Name       string      `json:"name"`
	AssignedTo string      `json:"assignedTo"`
	StartDate  *legacyDate `json:"startDate"`
	EndDate    *legacyDate `json:"endDate"`
	DueDate    *legacyDate `json:"dueDate"`
	Status     string      `json:"status"`
	Completed  *bool       `json:"completed"`
	Priority   string      `json:"priority"`
}

type legacyChatMessage struct {
	ID        legacyID    `json:"id"`
	SenderID  legacyID    `json:"senderId"`
	Text      string      `json:"text"`
	Timestamp *legacyDate `json:"timestamp"`
}

type legacyCurrentUser struct {
	ID legacyID `json:"id"`
}

type legacyDocument struct {
	Members      []legacyMember      `json:"members"`
	Projects     []legacyProject     `json:"projects"`
	Tasks        []legacyTask        `json:"tasks"`
	ChatMessages []legacyChatMessage `json:"chatMessages"`
	CurrentUser  *legacyCurrentUser  `json:"currentUser"`
}

func normalizeRole(s string) string {
	if strings.EqualFold(s, model.RoleLeader) {
		return model.RoleLeader
	}
	return model.RoleMember
}

func normalizeProjectStatus(s string) string {
	// Old exports used "Pending" for not-yet-started projects.
	if strings.EqualFold(s, "Pending") {
		return model.ProjectPlanned
	}
	for _, known := range []string{model.ProjectPlanned, model.ProjectOngoing, model.ProjectCompleted, model.ProjectOverdue} {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return model.ProjectPlanned
}

func emailFor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@weekly.com"
}

// normalize converts a legacy document into the canonical shape, minting new
// uuids for the numeric ids and resolving assignedTo member names.
func (d *legacyDocument) normalize() Document {
	byLegacyID := make(map[string]uuid.UUID)
	byName := make(map[string]uuid.UUID)

	var doc Document
	for _, m := range d.Members {
		id := uuid.New()
		if !m.ID.empty() {
			byLegacyID[m.ID.raw] = id
		}
		if m.Name != "" {
			byName[m.Name] = id
		}
		email := m.Email
		if email == "" {
			email = emailFor(m.Name)
		}
		title := m.Title
		if title == "" {
			title = "Team Member"
		}
		doc.Members = append(doc.Members, model.Member{
			ID:        id,
			Name:      m.Name,
			Email:     email,
			Role:      normalizeRole(m.Role),
			Title:     title,
			AvatarURL: m.AvatarURL,
		})
	}

	projectIDs := make(map[string]uuid.UUID)
	for _, p := range d.Projects {
		id := uuid.New()
		if !p.ID.empty() {
			projectIDs[p.ID.raw] = id
		}
		project := model.Project{
			ID:     id,
			Name:   p.Name,
			Status: normalizeProjectStatus(p.Status),
		}
		if p.StartDate != nil {
			project.StartDate = p.StartDate.t
		}
		if p.EndDate != nil {
			project.EndDate = p.EndDate.t
		}
		if leader, ok := byLegacyID[p.LeaderID.raw]; ok {
			project.CreatedBy = leader
			project.TeamMemberIDs = append(project.TeamMemberIDs, leader)
		}
		for _, mid := range p.MemberIDs {
			if member, ok := byLegacyID[mid.raw]; ok && !project.HasMember(member) {
				project.TeamMemberIDs = append(project.TeamMemberIDs, member)
			}
		}
		doc.Projects = append(doc.Projects, project)
	}

	for _, t := range d.Tasks {
		task := model.Task{
			ID:       uuid.New(),
			Title:    t.Title,
			Status:   model.TaskPending,
			Priority: model.PriorityMedium,
		}
		// Some exports called the title "name".
		if task.Title == "" {
			task.Title = t.Name
		}
		if pid, ok := projectIDs[t.ProjectID.raw]; ok {
			p := pid
			task.ProjectID = &p
		}
		if t.StartDate != nil {
			start := t.StartDate.t
			task.StartDate = &start
		}
		switch {
		case t.DueDate != nil:
			task.DueDate = t.DueDate.t
		case t.EndDate != nil:
			task.DueDate = t.EndDate.t
		}
		switch {
		case model.ValidTaskStatus(t.Status):
			task.Status = t.Status
		case t.Completed != nil && *t.Completed:
			task.Status = model.TaskCompleted
		}
		if model.ValidPriority(t.Priority) {
			task.Priority = t.Priority
		}
		// assignedTo held the member's display name, not an id.
		if assignee, ok := byName[t.AssignedTo]; ok {
			a := assignee
			task.AssigneeID = &a
		}
		doc.Tasks = append(doc.Tasks, task)
	}

	for _, c := range d.ChatMessages {
		msg := model.ChatMessage{
			ID:   uuid.New(),
			Text: c.Text,
		}
		if sender, ok := byLegacyID[c.SenderID.raw]; ok {
			msg.SenderID = sender
		}
		if c.Timestamp != nil {
			msg.Timestamp = c.Timestamp.t
		}
		doc.ChatMessages = append(doc.ChatMessages, msg)
	}

	if d.CurrentUser != nil {
		if id, ok := byLegacyID[d.CurrentUser.ID.raw]; ok {
			doc.CurrentUser = &id
		}
	}

	derive(&doc)
	return doc
}

// decodeDocument parses a store file, converting legacy exports on the fly.
func decodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil {
		derive(&doc)
		return doc, nil
	}

	var legacy legacyDocument
	if err := json.Unmarshal(data, &legacy); err != nil {
		return Document{}, err
	}
	return legacy.normalize(), nil
}
