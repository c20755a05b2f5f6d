package handler

import (
	"net/http"
	"sort"
	"time"

	"teamtrack/internal/model"
	"teamtrack/internal/repository"
	"teamtrack/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	projects repository.ProjectRepositoryInterface
	tasks    repository.TaskRepositoryInterface
	members  repository.MemberRepositoryInterface
}

func NewDashboardHandler(
	projects repository.ProjectRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	members repository.MemberRepositoryInterface,
) *DashboardHandler {
	return &DashboardHandler{projects: projects, tasks: tasks, members: members}
}

type DashboardSummary struct {
	TotalProjects  int `json:"total_projects"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
}

type DeadlineEntry struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	DueDate   time.Time  `json:"due_date"`
	Priority  string     `json:"priority"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
}

type RecentProject struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardResponse struct {
	Summary           DashboardSummary `json:"summary"`
	UpcomingDeadlines []DeadlineEntry  `json:"upcoming_deadlines"`
	ProjectStatus     map[string]int   `json:"project_status"`
	TaskStatus        map[string]int   `json:"task_status"`
	TaskPriority      map[string]int   `json:"task_priority"`
	RecentProjects    []RecentProject  `json:"recent_projects"`
}

// Get aggregates the viewer's visible projects and tasks: a Leader sees
// stats over everything, a Member only over their own data.
func (h *DashboardHandler) Get(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	allProjects, err := h.projects.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}
	allTasks, err := h.tasks.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	projects := visibility.Projects(viewer, allProjects)
	tasks := visibility.Tasks(viewer, allTasks)

	completed := 0
	taskStatus := map[string]int{
		model.TaskPending:    0,
		model.TaskInProgress: 0,
		model.TaskCompleted:  0,
	}
	taskPriority := map[string]int{
		model.PriorityLow:    0,
		model.PriorityMedium: 0,
		model.PriorityHigh:   0,
	}
	for _, t := range tasks {
		if t.Status == model.TaskCompleted {
			completed++
		}
		taskStatus[t.Status]++
		taskPriority[t.Priority]++
	}

	projectStatus := map[string]int{
		model.ProjectPlanned:   0,
		model.ProjectOngoing:   0,
		model.ProjectCompleted: 0,
		model.ProjectOverdue:   0,
	}
	for _, p := range projects {
		projectStatus[p.Status]++
	}

	upcoming := visibility.UpcomingDeadlines(tasks, time.Now(), 5)
	deadlines := make([]DeadlineEntry, len(upcoming))
	for i, t := range upcoming {
		deadlines[i] = DeadlineEntry{
			ID:        t.ID,
			Title:     t.Title,
			DueDate:   t.DueDate,
			Priority:  t.Priority,
			ProjectID: t.ProjectID,
		}
	}

	recent := make([]model.Project, len(projects))
	copy(recent, projects)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	recentProjects := make([]RecentProject, len(recent))
	for i, p := range recent {
		recentProjects[i] = RecentProject{
			ID:        p.ID,
			Name:      p.Name,
			Status:    p.Status,
			Progress:  p.Progress,
			CreatedAt: p.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Summary: DashboardSummary{
			TotalProjects:  len(projects),
			TotalTasks:     len(tasks),
			CompletedTasks: completed,
			PendingTasks:   len(tasks) - completed,
		},
		UpcomingDeadlines: deadlines,
		ProjectStatus:     projectStatus,
		TaskStatus:        taskStatus,
		TaskPriority:      taskPriority,
		RecentProjects:    recentProjects,
	})
}
