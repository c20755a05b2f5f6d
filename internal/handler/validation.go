package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the field-level error list returned on
// validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindJSON binds the request body into obj. On failure it writes a 400 with
// a field-level error list and returns false.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrs := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
