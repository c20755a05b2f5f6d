package handler

import (
	"log"
	"net/http"
	"time"

	"teamtrack/internal/model"
	"teamtrack/internal/policy"
	"teamtrack/internal/repository"
	"teamtrack/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks    repository.TaskRepositoryInterface
	projects repository.ProjectRepositoryInterface
	members  repository.MemberRepositoryInterface
}

func NewTaskHandler(
	tasks repository.TaskRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	members repository.MemberRepositoryInterface,
) *TaskHandler {
	return &TaskHandler{tasks: tasks, projects: projects, members: members}
}

// TaskRequest carries the writable task fields. ProjectID may be empty for
// a personal task.
type TaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ProjectID   string     `json:"project_id" binding:"omitempty,uuid"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date" binding:"required"`
	Status      string     `json:"status" binding:"omitempty,oneof=Pending 'In Progress' Completed"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssigneeID  string     `json:"assignee_id" binding:"omitempty,uuid"`
	// Unassign clears the assignee; an empty assignee_id alone means keep.
	Unassign bool `json:"unassign"`
}

// TaskResponse wraps a task and flags the one policy decision that is an
// override rather than a rejection: a Member-supplied assignee forced back
// to themselves.
type TaskResponse struct {
	model.Task
	AssigneeOverridden bool `json:"assignee_overridden,omitempty"`
}

func (r *TaskRequest) assigneeID() *uuid.UUID {
	if r.AssigneeID == "" {
		return nil
	}
	id, err := uuid.Parse(r.AssigneeID)
	if err != nil {
		return nil
	}
	return &id
}

// Create creates a new task and recomputes its project's progress. Members
// always end up assigned to themselves.
func (h *TaskHandler) Create(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionCreateTask, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	var projectID *uuid.UUID
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}

		project, err := h.projects.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
			return
		}
		if project == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		if !viewer.IsLeader() && !project.HasMember(viewer.ID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to this project"})
			return
		}
		projectID = &id
	}

	assignee, overridden := policy.ResolveAssignee(viewer, req.assigneeID())
	if overridden {
		log.Printf("⚠️  Member %s attempted to assign task %q to %s, forced back to self", viewer.ID, req.Title, req.AssigneeID)
	}
	if assignee != nil {
		member, err := h.members.GetByID(c.Request.Context(), *assignee)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
			return
		}
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignee not found"})
			return
		}
	}

	status := req.Status
	if status == "" {
		status = model.TaskPending
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	task := &model.Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     *req.DueDate,
		Status:      status,
		Priority:    priority,
		AssigneeID:  assignee,
		CreatedBy:   viewer.ID,
	}

	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	h.recalculate(c, task.ProjectID)

	c.JSON(http.StatusCreated, TaskResponse{Task: *task, AssigneeOverridden: overridden})
}

// GetAll returns the tasks visible to the viewer, ordered by due date.
func (h *TaskHandler) GetAll(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	tasks, err := h.tasks.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, visibility.Tasks(viewer, tasks))
}

// GetByID returns a single task if the viewer may see it.
func (h *TaskHandler) GetByID(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	if !viewer.IsLeader() && !task.AssignedTo(viewer.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update updates a task. A Leader may edit any task and reassign it; a
// Member may edit only their own and reassignment attempts are overridden.
func (h *TaskHandler) Update(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionUpdateTask, task); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	assigneeOverridden := false

	task.Title = req.Title
	task.Description = req.Description
	task.StartDate = req.StartDate
	task.DueDate = *req.DueDate
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}

	// Assignment only changes when the request names an assignee or asks
	// for an explicit unassign. The assignment rule keeps a Member's own
	// task on themselves either way.
	switch {
	case req.Unassign:
		task.AssigneeID, assigneeOverridden = policy.ResolveAssignee(viewer, nil)
	case req.AssigneeID != "":
		assignee, overridden := policy.ResolveAssignee(viewer, req.assigneeID())
		if overridden {
			log.Printf("⚠️  Member %s attempted to reassign task %s to %s, forced back to self", viewer.ID, task.ID, req.AssigneeID)
		}
		task.AssigneeID = assignee
		assigneeOverridden = overridden
	}

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	h.recalculate(c, task.ProjectID)

	c.JSON(http.StatusOK, TaskResponse{Task: *task, AssigneeOverridden: assigneeOverridden})
}

// Delete deletes a task and recomputes its project's progress.
func (h *TaskHandler) Delete(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionDeleteTask, task); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	h.recalculate(c, task.ProjectID)

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) loadTask(c *gin.Context) (*model.Task, bool) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return nil, false
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if err == repository.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return nil, false
	}
	return task, true
}

// recalculate rederives the parent project's progress after a task write.
// Personal tasks have no project and nothing to recompute; a concurrently
// deleted project is a no-op inside the repository.
func (h *TaskHandler) recalculate(c *gin.Context, projectID *uuid.UUID) {
	if projectID == nil {
		return
	}
	if err := h.projects.RecalculateProgress(c.Request.Context(), *projectID); err != nil {
		log.Printf("❌ Failed to recalculate progress for project %s: %v", projectID, err)
	}
}
