package handler

import (
	"net/http"

	"teamtrack/internal/middleware"
	"teamtrack/internal/model"
	"teamtrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentViewer resolves the authenticated viewer from the request context.
// The role always comes from the live member record, never from the token,
// so a role edit applies on the next request. On failure the response has
// already been written and ok is false.
func currentViewer(c *gin.Context, members repository.MemberRepositoryInterface) (model.Viewer, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return model.Viewer{}, false
	}

	memberID, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return model.Viewer{}, false
	}

	member, err := members.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return model.Viewer{}, false
	}
	if member == nil {
		// Token for a deleted member.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return model.Viewer{}, false
	}

	return model.ViewerFor(member), true
}
