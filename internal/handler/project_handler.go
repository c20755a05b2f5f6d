package handler

import (
	"net/http"
	"time"

	"teamtrack/internal/model"
	"teamtrack/internal/policy"
	"teamtrack/internal/repository"
	"teamtrack/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projects repository.ProjectRepositoryInterface
	tasks    repository.TaskRepositoryInterface
	members  repository.MemberRepositoryInterface
}

func NewProjectHandler(
	projects repository.ProjectRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	members repository.MemberRepositoryInterface,
) *ProjectHandler {
	return &ProjectHandler{projects: projects, tasks: tasks, members: members}
}

// ProjectRequest carries the fields a Leader may set on a project.
type ProjectRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	StartDate     *time.Time `json:"start_date" binding:"required"`
	EndDate       *time.Time `json:"end_date" binding:"required"`
	Status        string     `json:"status" binding:"omitempty,oneof=Planned Ongoing Completed Overdue"`
	TeamMemberIDs []string   `json:"team_member_ids" binding:"omitempty,dive,uuid"`
}

func (r *ProjectRequest) teamMemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.TeamMemberIDs))
	for _, s := range r.TeamMemberIDs {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Create creates a new project. Leader only.
func (h *ProjectHandler) Create(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionCreateProject, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	status := req.Status
	if status == "" {
		status = model.ProjectPlanned
	}

	project := &model.Project{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     *req.StartDate,
		EndDate:       *req.EndDate,
		Status:        status,
		CreatedBy:     viewer.ID,
		TeamMemberIDs: req.teamMemberIDs(),
	}

	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetAll returns the projects visible to the viewer.
func (h *ProjectHandler) GetAll(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	projects, err := h.projects.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	c.JSON(http.StatusOK, visibility.Projects(viewer, projects))
}

// GetByID returns a single project if the viewer may see it.
func (h *ProjectHandler) GetByID(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	if !viewer.IsLeader() && !project.HasMember(viewer.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Update updates a project. Leader only.
func (h *ProjectHandler) Update(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionUpdateProject, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	project.StartDate = *req.StartDate
	project.EndDate = *req.EndDate
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.TeamMemberIDs != nil {
		project.TeamMemberIDs = req.teamMemberIDs()
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete deletes a project and all its tasks. Leader only.
func (h *ProjectHandler) Delete(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionDeleteProject, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), projectID); err != nil {
		if err == repository.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
