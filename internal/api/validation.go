package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"net/http"

	"github.com/tastery/backend/internal/service"
)

// FieldError is one violated constraint in a request body.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// bindingErrorResponse turns a binding failure into a 400 body. Validator
// errors carry every violated field at once, so the caller gets the complete
// report rather than the first violation.
func bindingErrorResponse(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field: fe.Field(),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
		return gin.H{"error": "validation failed", "fields": fields}
	}
	return gin.H{"error": "invalid request body"}
}

// respondServiceError maps service errors to the HTTP taxonomy. Storage
// failures are reported as opaque 500s; internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": []FieldError{{Field: verr.Field, Rule: verr.Message}},
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
