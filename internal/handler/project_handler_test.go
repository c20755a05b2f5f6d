package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"teamtrack/internal/handler"
	"teamtrack/internal/model"
	"teamtrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupProjectTest(viewerID uuid.UUID) (*gin.Engine, *MockProjectRepository, *MockMemberRepository) {
	r := authedRouter(viewerID)
	mockProjects := new(MockProjectRepository)
	mockTasks := new(MockTaskRepository)
	mockMembers := new(MockMemberRepository)
	projectHandler := handler.NewProjectHandler(mockProjects, mockTasks, mockMembers)

	r.POST("/projects", projectHandler.Create)
	r.GET("/projects", projectHandler.GetAll)
	r.GET("/projects/:id", projectHandler.GetByID)
	r.PUT("/projects/:id", projectHandler.Update)
	r.DELETE("/projects/:id", projectHandler.Delete)

	return r, mockProjects, mockMembers
}

func TestProjectCreate_LeaderSuccess(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleLeader}
	router, mockProjects, mockMembers := setupProjectTest(viewer.ID)

	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	mockProjects.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)

	start := time.Now()
	end := start.Add(30 * 24 * time.Hour)
	req := jsonRequest("POST", "/projects", handler.ProjectRequest{
		Name:          "Apollo",
		StartDate:     &start,
		EndDate:       &end,
		Status:        model.ProjectPlanned,
		TeamMemberIDs: []string{uuid.New().String()},
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var project model.Project
	err := json.Unmarshal(resp.Body.Bytes(), &project)
	assert.NoError(t, err)
	assert.Equal(t, "Apollo", project.Name)
	assert.Equal(t, 0, project.Progress)
	mockProjects.AssertExpectations(t)
}

func TestProjectCreate_MemberForbidden(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleMember}
	router, mockProjects, mockMembers := setupProjectTest(viewer.ID)

	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)

	start := time.Now()
	end := start.Add(24 * time.Hour)
	req := jsonRequest("POST", "/projects", handler.ProjectRequest{
		Name:      "Nope",
		StartDate: &start,
		EndDate:   &end,
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Leader role required")
	mockProjects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectGetByID_MemberOutsideTeam(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleMember}
	router, mockProjects, mockMembers := setupProjectTest(viewer.ID)

	project := &model.Project{
		ID:            uuid.New(),
		Name:          "Closed",
		TeamMemberIDs: []uuid.UUID{uuid.New()},
	}
	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	mockProjects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

	req, _ := http.NewRequest("GET", "/projects/"+project.ID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestProjectGetAll_MemberSeesOnlyTeamProjects(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleMember}
	router, mockProjects, mockMembers := setupProjectTest(viewer.ID)

	projects := []model.Project{
		{ID: uuid.New(), Name: "Mine", TeamMemberIDs: []uuid.UUID{viewer.ID}},
		{ID: uuid.New(), Name: "Not mine", TeamMemberIDs: []uuid.UUID{uuid.New()}},
	}
	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	mockProjects.On("GetAll", mock.Anything).Return(projects, nil)

	req, _ := http.NewRequest("GET", "/projects", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var visible []model.Project
	err := json.Unmarshal(resp.Body.Bytes(), &visible)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, "Mine", visible[0].Name)
}

func TestProjectDelete_NotFound(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleLeader}
	router, mockProjects, mockMembers := setupProjectTest(viewer.ID)

	missing := uuid.New()
	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	mockProjects.On("Delete", mock.Anything, missing).Return(repository.ErrProjectNotFound)

	req, _ := http.NewRequest("DELETE", "/projects/"+missing.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
