package handler

import (
	"net/http"
	"strings"

	"teamtrack/internal/model"
	"teamtrack/internal/policy"
	"teamtrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type TeamHandler struct {
	members repository.MemberRepositoryInterface
}

func NewTeamHandler(members repository.MemberRepositoryInterface) *TeamHandler {
	return &TeamHandler{members: members}
}

type createMemberRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=Leader Member"`
	Title    string `json:"title"`
}

type updateMemberRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2"`
	Email string `json:"email" binding:"omitempty,email"`
	Role  string `json:"role" binding:"omitempty,oneof=Leader Member"`
	Title string `json:"title"`
}

// GetAll lists every team member. Any authenticated viewer may see the
// roster; only mutations are Leader-gated.
func (h *TeamHandler) GetAll(c *gin.Context) {
	if _, ok := currentViewer(c, h.members); !ok {
		return
	}

	members, err := h.members.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	infos := make([]MemberInfo, len(members))
	for i, m := range members {
		infos[i] = memberInfo(&m)
	}
	c.JSON(http.StatusOK, infos)
}

// GetByID returns a single team member.
func (h *TeamHandler) GetByID(c *gin.Context) {
	if _, ok := currentViewer(c, h.members); !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	member, err := h.members.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, memberInfo(member))
}

// Create adds a new team member. Leader only.
func (h *TeamHandler) Create(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionManageTeam, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req createMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.members.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Member already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hash error"})
		return
	}

	title := req.Title
	if title == "" {
		title = "Team Member"
	}

	member := &model.Member{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		Role:           req.Role,
		Title:          title,
	}

	if err := h.members.Create(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
		return
	}

	c.JSON(http.StatusCreated, memberInfo(member))
}

// Update edits a team member. Leader only.
func (h *TeamHandler) Update(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionManageTeam, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	member, err := h.members.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	var req updateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Email != "" {
		member.Email = strings.ToLower(req.Email)
	}
	if req.Role != "" {
		member.Role = req.Role
	}
	if req.Title != "" {
		member.Title = req.Title
	}

	if err := h.members.Update(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	c.JSON(http.StatusOK, memberInfo(member))
}

// Delete removes a team member. Their tasks become unassigned; a Leader
// cannot remove themselves.
func (h *TeamHandler) Delete(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	if err := policy.Authorize(viewer, policy.ActionManageTeam, nil); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	if memberID == viewer.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
		return
	}

	// The acting leader inherits anything the member authored.
	if err := h.members.Delete(c.Request.Context(), memberID, viewer.ID); err != nil {
		if err == repository.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}

func memberInfo(m *model.Member) MemberInfo {
	return MemberInfo{
		ID:    m.ID.String(),
		Name:  m.Name,
		Email: m.Email,
		Role:  m.Role,
		Title: m.Title,
	}
}
