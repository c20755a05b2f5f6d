// Package localstore is the tracker CLI's persistence layer: one JSON file
// mirroring the browser build's local storage, with the same named records
// (members, projects, tasks, chatMessages, currentUser). Mutations enforce
// the same role policy and progress recomputation as the server.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"teamtrack/internal/model"
	"teamtrack/internal/policy"
	"teamtrack/internal/progress"
	"teamtrack/internal/session"
	"teamtrack/internal/visibility"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrMemberNotFound  = errors.New("member not found")
)

// Document is the whole store: every record lives in one file, like the
// original's local storage. Last write wins; there is no coordination
// between concurrent processes.
type Document struct {
	Members      []model.Member      `json:"members"`
	Projects     []model.Project     `json:"projects"`
	Tasks        []model.Task        `json:"tasks"`
	ChatMessages []model.ChatMessage `json:"chatMessages"`
	CurrentUser  *uuid.UUID          `json:"currentUser,omitempty"`
}

// derive recomputes every project's progress from its tasks.
func derive(doc *Document) {
	for i := range doc.Projects {
		id := doc.Projects[i].ID
		var tasks []model.Task
		for _, t := range doc.Tasks {
			if t.ProjectID != nil && *t.ProjectID == id {
				tasks = append(tasks, t)
			}
		}
		doc.Projects[i].Progress = progress.Compute(tasks)
	}
}

type Store struct {
	path string
	doc  Document
}

var _ session.Resolver = (*Store)(nil)

// Open loads the store file, seeding demo data when the file does not exist
// and resetting to the seed when it cannot be parsed. A parse error never
// propagates to the caller.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.doc = seedDocument()
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading store: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		log.Printf("⚠️  Store file %s is corrupt, resetting to demo data: %v", path, err)
		s.doc = seedDocument()
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.doc = doc
	return s, nil
}

// save writes the document atomically: full rewrite to a temp file in the
// same directory, then rename over the old one.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".teamtrack-*.json")
	if err != nil {
		return fmt.Errorf("creating temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

// Login verifies a demo credential and remembers the signed-in member.
func (s *Store) Login(username, password string) (*model.Member, error) {
	cred, err := session.VerifyDemo(username, password)
	if err != nil {
		return nil, err
	}

	member := s.findMemberByEmail(cred.Email)
	if member == nil {
		return nil, fmt.Errorf("no member record for %s: %w", cred.Username, ErrMemberNotFound)
	}

	id := member.ID
	s.doc.CurrentUser = &id
	if err := s.save(); err != nil {
		return nil, err
	}
	out := *member
	return &out, nil
}

// Logout forgets the signed-in member.
func (s *Store) Logout() error {
	s.doc.CurrentUser = nil
	return s.save()
}

// Resolve returns the signed-in viewer, re-read from the member record.
func (s *Store) Resolve(ctx context.Context) (model.Viewer, error) {
	if s.doc.CurrentUser == nil {
		return model.Viewer{}, session.ErrNotSignedIn
	}
	member := s.findMember(*s.doc.CurrentUser)
	if member == nil {
		// Stale sign-in for a deleted member.
		return model.Viewer{}, session.ErrNotSignedIn
	}
	return model.ViewerFor(member), nil
}

// CurrentMember returns the signed-in member record.
func (s *Store) CurrentMember(ctx context.Context) (*model.Member, error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	out := *s.findMember(viewer.ID)
	return &out, nil
}

// Members returns the full roster. Any signed-in viewer may see it.
func (s *Store) Members(ctx context.Context) ([]model.Member, error) {
	if _, err := s.Resolve(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Member, len(s.doc.Members))
	copy(out, s.doc.Members)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Projects returns the projects the viewer may see.
func (s *Store) Projects(ctx context.Context) ([]model.Project, error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	// For a Leader the visibility filter returns the document's own slice;
	// hand out a copy so reads never alias stored state.
	visible := visibility.Projects(viewer, s.doc.Projects)
	out := make([]model.Project, len(visible))
	copy(out, visible)
	return out, nil
}

// Tasks returns the tasks the viewer may see, ordered by due date.
func (s *Store) Tasks(ctx context.Context) ([]model.Task, error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	visible := visibility.Tasks(viewer, s.doc.Tasks)
	tasks := make([]model.Task, len(visible))
	copy(tasks, visible)
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	return tasks, nil
}

// CreateProject adds a project. Leader only.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := policy.Authorize(viewer, policy.ActionCreateProject, nil); err != nil {
		return err
	}

	p.ID = uuid.New()
	p.CreatedBy = viewer.ID
	p.CreatedAt = time.Now()
	if p.Status == "" {
		p.Status = model.ProjectPlanned
	}
	p.Progress = 0

	s.doc.Projects = append(s.doc.Projects, *p)
	return s.save()
}

// UpdateProject edits a project. Leader only; progress stays derived.
func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := policy.Authorize(viewer, policy.ActionUpdateProject, nil); err != nil {
		return err
	}

	for i := range s.doc.Projects {
		if s.doc.Projects[i].ID == p.ID {
			p.CreatedBy = s.doc.Projects[i].CreatedBy
			p.CreatedAt = s.doc.Projects[i].CreatedAt
			p.Progress = s.doc.Projects[i].Progress
			s.doc.Projects[i] = *p
			return s.save()
		}
	}
	return ErrProjectNotFound
}

// DeleteProject removes a project and every task in it. Leader only.
func (s *Store) DeleteProject(ctx context.Context, id uuid.UUID) error {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := policy.Authorize(viewer, policy.ActionDeleteProject, nil); err != nil {
		return err
	}

	found := false
	projects := s.doc.Projects[:0]
	for _, p := range s.doc.Projects {
		if p.ID == id {
			found = true
			continue
		}
		projects = append(projects, p)
	}
	if !found {
		return ErrProjectNotFound
	}
	s.doc.Projects = projects

	tasks := s.doc.Tasks[:0]
	for _, t := range s.doc.Tasks {
		if t.ProjectID != nil && *t.ProjectID == id {
			continue
		}
		tasks = append(tasks, t)
	}
	s.doc.Tasks = tasks

	return s.save()
}

// CreateTask adds a task and recomputes the project's progress. A Member's
// requested assignee is forced back to themselves; overridden reports when
// that happened.
func (s *Store) CreateTask(ctx context.Context, t *model.Task) (overridden bool, err error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}
	if err := policy.Authorize(viewer, policy.ActionCreateTask, nil); err != nil {
		return false, err
	}

	if t.ProjectID != nil {
		project := s.findProject(*t.ProjectID)
		if project == nil {
			return false, ErrProjectNotFound
		}
		if !viewer.IsLeader() && !project.HasMember(viewer.ID) {
			return false, fmt.Errorf("not on the project team: %w", policy.ErrForbidden)
		}
	}

	assignee, overridden := policy.ResolveAssignee(viewer, t.AssigneeID)
	if overridden {
		log.Printf("⚠️  Member %s attempted to assign task %q to %s, forced back to self", viewer.ID, t.Title, t.AssigneeID)
	}

	t.ID = uuid.New()
	t.AssigneeID = assignee
	t.CreatedBy = viewer.ID
	t.CreatedAt = time.Now()
	if t.Status == "" {
		t.Status = model.TaskPending
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}

	s.doc.Tasks = append(s.doc.Tasks, *t)
	derive(&s.doc)
	return overridden, s.save()
}

// UpdateTask edits a task and recomputes progress. A Member may only touch
// tasks assigned to themselves.
func (s *Store) UpdateTask(ctx context.Context, t *model.Task) (overridden bool, err error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}

	stored := s.findTask(t.ID)
	if stored == nil {
		return false, ErrTaskNotFound
	}
	if err := policy.Authorize(viewer, policy.ActionUpdateTask, stored); err != nil {
		return false, err
	}

	if t.AssigneeID != nil {
		assignee, over := policy.ResolveAssignee(viewer, t.AssigneeID)
		if over {
			log.Printf("⚠️  Member %s attempted to reassign task %s to %s, forced back to self", viewer.ID, t.ID, t.AssigneeID)
		}
		t.AssigneeID = assignee
		overridden = over
	} else {
		t.AssigneeID = stored.AssigneeID
	}

	t.ProjectID = stored.ProjectID
	t.CreatedBy = stored.CreatedBy
	t.CreatedAt = stored.CreatedAt
	*stored = *t
	derive(&s.doc)
	return overridden, s.save()
}

// AssignTask sets or clears a task's assignee. A nil assignee unassigns;
// the assignment rule still forces a Member back to themselves.
func (s *Store) AssignTask(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (overridden bool, err error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}

	stored := s.findTask(id)
	if stored == nil {
		return false, ErrTaskNotFound
	}
	if err := policy.Authorize(viewer, policy.ActionUpdateTask, stored); err != nil {
		return false, err
	}

	resolved, overridden := policy.ResolveAssignee(viewer, assignee)
	if overridden {
		log.Printf("⚠️  Member %s attempted to reassign task %s to %s, forced back to self", viewer.ID, id, assignee)
	}
	if resolved != nil {
		if s.findMember(*resolved) == nil {
			return false, ErrMemberNotFound
		}
	}
	stored.AssigneeID = resolved
	return overridden, s.save()
}

// DeleteTask removes a task and recomputes progress.
func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return err
	}

	stored := s.findTask(id)
	if stored == nil {
		return ErrTaskNotFound
	}
	if err := policy.Authorize(viewer, policy.ActionDeleteTask, stored); err != nil {
		return err
	}

	tasks := s.doc.Tasks[:0]
	for _, t := range s.doc.Tasks {
		if t.ID == id {
			continue
		}
		tasks = append(tasks, t)
	}
	s.doc.Tasks = tasks
	derive(&s.doc)
	return s.save()
}

// AddMember adds a team member. Leader only.
func (s *Store) AddMember(ctx context.Context, m *model.Member) error {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := policy.Authorize(viewer, policy.ActionManageTeam, nil); err != nil {
		return err
	}

	if s.findMemberByEmail(m.Email) != nil {
		return fmt.Errorf("member %s already exists", m.Email)
	}

	m.ID = uuid.New()
	if !model.ValidRole(m.Role) {
		m.Role = model.RoleMember
	}
	if m.Title == "" {
		m.Title = "Team Member"
	}
	m.CreatedAt = time.Now()

	s.doc.Members = append(s.doc.Members, *m)
	return s.save()
}

// RemoveMember removes a team member; their tasks become unassigned and
// they leave every project team. A Leader cannot remove themselves.
func (s *Store) RemoveMember(ctx context.Context, id uuid.UUID) error {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := policy.Authorize(viewer, policy.ActionManageTeam, nil); err != nil {
		return err
	}
	if id == viewer.ID {
		return errors.New("cannot delete yourself")
	}

	found := false
	members := s.doc.Members[:0]
	for _, m := range s.doc.Members {
		if m.ID == id {
			found = true
			continue
		}
		members = append(members, m)
	}
	if !found {
		return ErrMemberNotFound
	}
	s.doc.Members = members

	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].AssignedTo(id) {
			s.doc.Tasks[i].AssigneeID = nil
		}
		// Authored tasks fall to the acting leader.
		if s.doc.Tasks[i].CreatedBy == id {
			s.doc.Tasks[i].CreatedBy = viewer.ID
		}
	}
	for i := range s.doc.Projects {
		if s.doc.Projects[i].CreatedBy == id {
			s.doc.Projects[i].CreatedBy = viewer.ID
		}
		team := s.doc.Projects[i].TeamMemberIDs[:0]
		for _, mid := range s.doc.Projects[i].TeamMemberIDs {
			if mid != id {
				team = append(team, mid)
			}
		}
		s.doc.Projects[i].TeamMemberIDs = team
	}

	return s.save()
}

// Messages returns the shared team chat in timestamp order.
func (s *Store) Messages(ctx context.Context) ([]model.ChatMessage, error) {
	if _, err := s.Resolve(ctx); err != nil {
		return nil, err
	}
	out := make([]model.ChatMessage, len(s.doc.ChatMessages))
	copy(out, s.doc.ChatMessages)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// PostMessage appends to the shared team chat.
func (s *Store) PostMessage(ctx context.Context, text string) (model.ChatMessage, error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return model.ChatMessage{}, err
	}

	msg := model.ChatMessage{
		ID:        uuid.New(),
		SenderID:  viewer.ID,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.doc.ChatMessages = append(s.doc.ChatMessages, msg)
	return msg, s.save()
}

// FindProject returns a visible project by id.
func (s *Store) FindProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	viewer, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	project := s.findProject(id)
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if !viewer.IsLeader() && !project.HasMember(viewer.ID) {
		return nil, fmt.Errorf("not on the project team: %w", policy.ErrForbidden)
	}
	out := *project
	return &out, nil
}

// FindMember returns a member by id.
func (s *Store) FindMember(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	if _, err := s.Resolve(ctx); err != nil {
		return nil, err
	}
	member := s.findMember(id)
	if member == nil {
		return nil, ErrMemberNotFound
	}
	out := *member
	return &out, nil
}

func (s *Store) findMember(id uuid.UUID) *model.Member {
	for i := range s.doc.Members {
		if s.doc.Members[i].ID == id {
			return &s.doc.Members[i]
		}
	}
	return nil
}

func (s *Store) findMemberByEmail(email string) *model.Member {
	for i := range s.doc.Members {
		if s.doc.Members[i].Email == email {
			return &s.doc.Members[i]
		}
	}
	return nil
}

func (s *Store) findProject(id uuid.UUID) *model.Project {
	for i := range s.doc.Projects {
		if s.doc.Projects[i].ID == id {
			return &s.doc.Projects[i]
		}
	}
	return nil
}

func (s *Store) findTask(id uuid.UUID) *model.Task {
	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].ID == id {
			return &s.doc.Tasks[i]
		}
	}
	return nil
}
