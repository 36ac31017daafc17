package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-service/internal/adapter/repository/document"
	apperrors "quiz-service/pkg/errors"
	"quiz-service/pkg/security"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

var emptyBody = gin.H{}

// statusCode maps a repository status to an HTTP status code.
func statusCode(s document.Status) int {
	switch s {
	case document.StatusOK, document.StatusCreated:
		return http.StatusOK
	case document.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeResult serializes a repository result. Results without a document are
// written as {}.
func writeResult[T any](c *gin.Context, res document.Result[T]) {
	if res.Data == nil {
		c.JSON(statusCode(res.Status), emptyBody)
		return
	}
	c.JSON(statusCode(res.Status), res.Data)
}

// handleError converts a use case error into an HTTP response. Only the
// already-enrolled case carries a body; internal details never leave the
// service.
func (h *EnrollmentHandler) handleError(c *gin.Context, err error) {
	var existsErr *apperrors.AlreadyExistsError
	if errors.As(err, &existsErr) {
		c.JSON(existsErr.HTTPStatus(), ErrorResponse{
			Error:   "already_enrolled",
			Message: existsErr.Error(),
		})
		return
	}

	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		c.JSON(statuser.HTTPStatus(), emptyBody)
		return
	}
	c.JSON(http.StatusInternalServerError, emptyBody)
}

// pathID reads a document id path parameter. Ids that cannot exist are
// answered with 404 {} and ok is false.
func pathID(c *gin.Context, name string) (id string, ok bool) {
	id = c.Param(name)
	if err := security.ValidateDocumentID(id); err != nil {
		c.JSON(http.StatusNotFound, emptyBody)
		return "", false
	}
	return id, true
}
