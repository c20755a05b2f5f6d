package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"teamtrack/internal/handler"
	"teamtrack/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTeamTest(viewerID uuid.UUID) (*gin.Engine, *MockMemberRepository) {
	r := authedRouter(viewerID)
	mockMembers := new(MockMemberRepository)
	teamHandler := handler.NewTeamHandler(mockMembers)

	r.GET("/team", teamHandler.GetAll)
	r.POST("/team", teamHandler.Create)
	r.PUT("/team/:id", teamHandler.Update)
	r.DELETE("/team/:id", teamHandler.Delete)

	return r, mockMembers
}

func TestTeamCreate_Success(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleLeader}
	router, mockMembers := setupTeamTest(viewer.ID)

	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	mockMembers.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	mockMembers.On("Create", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)

	req := jsonRequest("POST", "/team", map[string]string{
		"name":     "New Member",
		"email":    "New@Example.com",
		"password": "secret123",
		"role":     model.RoleMember,
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var info handler.MemberInfo
	err := json.Unmarshal(resp.Body.Bytes(), &info)
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", info.Email)
	assert.Equal(t, "Team Member", info.Title)
	mockMembers.AssertExpectations(t)
}

func TestTeamCreate_MemberForbidden(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleMember}
	router, mockMembers := setupTeamTest(viewer.ID)

	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)

	req := jsonRequest("POST", "/team", map[string]string{
		"name":     "New Member",
		"email":    "new@example.com",
		"password": "secret123",
		"role":     model.RoleMember,
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Leader role required")
	mockMembers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTeamCreate_DuplicateEmail(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleLeader}
	router, mockMembers := setupTeamTest(viewer.ID)

	existing := &model.Member{ID: uuid.New(), Email: "taken@example.com"}
	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	mockMembers.On("FindByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

	req := jsonRequest("POST", "/team", map[string]string{
		"name":     "Dup",
		"email":    "taken@example.com",
		"password": "secret123",
		"role":     model.RoleMember,
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "Member already exists")
}

func TestTeamDelete_CannotDeleteSelf(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleLeader}
	router, mockMembers := setupTeamTest(viewer.ID)

	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)

	req, _ := http.NewRequest("DELETE", "/team/"+viewer.ID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Cannot delete yourself")
	mockMembers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamDelete_Success(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleLeader}
	router, mockMembers := setupTeamTest(viewer.ID)

	target := uuid.New()
	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	// Authored records fall to the acting leader.
	mockMembers.On("Delete", mock.Anything, target, viewer.ID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/team/"+target.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	mockMembers.AssertExpectations(t)
}

func TestTeamGetAll_AnyAuthenticatedViewer(t *testing.T) {
	viewer := &model.Member{ID: uuid.New(), Role: model.RoleMember}
	router, mockMembers := setupTeamTest(viewer.ID)

	roster := []model.Member{
		{ID: uuid.New(), Name: "Alice", Role: model.RoleLeader},
		{ID: uuid.New(), Name: "Bob", Role: model.RoleMember},
	}
	mockMembers.On("GetByID", mock.Anything, viewer.ID).Return(viewer, nil)
	mockMembers.On("GetAll", mock.Anything).Return(roster, nil)

	req, _ := http.NewRequest("GET", "/team", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var infos []handler.MemberInfo
	err := json.Unmarshal(resp.Body.Bytes(), &infos)
	assert.NoError(t, err)
	assert.Len(t, infos, 2)
}
