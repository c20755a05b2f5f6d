package handler

import (
	"net/http"
	"strings"
	"time"

	"teamtrack/internal/auth"
	"teamtrack/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	members   repository.MemberRepositoryInterface
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthHandler(members repository.MemberRepositoryInterface, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{members: members, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MemberInfo is the public view of a member returned by auth endpoints.
type MemberInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Title string `json:"title,omitempty"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  MemberInfo `json:"user"`
}

// Login authenticates a member by email and password and issues a signed
// session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Email = strings.ToLower(req.Email)

	member, err := h.members.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	// Same response for unknown email and wrong password.
	if member == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.HashedPassword), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, member.ID.String(), h.jwtExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User: MemberInfo{
			ID:    member.ID.String(),
			Name:  member.Name,
			Email: member.Email,
			Role:  member.Role,
			Title: member.Title,
		},
	})
}

// Me returns the viewer's own member record, re-resolved from the store.
func (h *AuthHandler) Me(c *gin.Context) {
	viewer, ok := currentViewer(c, h.members)
	if !ok {
		return
	}

	member, err := h.members.GetByID(c.Request.Context(), viewer.ID)
	if err != nil || member == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}

	c.JSON(http.StatusOK, MemberInfo{
		ID:    member.ID.String(),
		Name:  member.Name,
		Email: member.Email,
		Role:  member.Role,
		Title: member.Title,
	})
}
