package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-service/internal/adapter/gin/validation"
	"quiz-service/internal/adapter/repository/document"
	"quiz-service/internal/domain/user"
	"quiz-service/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	repo document.Repository[user.User]
	log  *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(repo document.Repository[user.User], log *zap.Logger) *UserHandler {
	return &UserHandler{
		repo: repo,
		log:  log,
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	req, ok := validation.Payload[CreateUserRequest](c)
	if !ok {
		c.JSON(http.StatusInternalServerError, emptyBody)
		return
	}

	res := h.repo.Create(c.Request.Context(), req.ToUser())
	if res.Data != nil {
		logger.WithContext(c.Request.Context(), h.log).Info("user created", zap.String("id", res.Data.ID))
	}
	writeResult(c, res)
}

// GetUser handles GET /users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	writeResult(c, h.repo.Get(c.Request.Context(), id))
}

// DeleteUser handles DELETE /users/:userId
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}

	res := h.repo.Delete(c.Request.Context(), id)
	if res.Status == document.StatusOK {
		logger.WithContext(c.Request.Context(), h.log).Info("user deleted", zap.String("id", id))
	}
	writeResult(c, res)
}
