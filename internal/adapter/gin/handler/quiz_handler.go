package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-service/internal/adapter/gin/validation"
	"quiz-service/internal/adapter/repository/document"
	"quiz-service/internal/domain/quiz"
	"quiz-service/pkg/docstore"
	"quiz-service/pkg/logger"
)

// recentQuizzes selects what GET /quizzes returns.
var recentQuizzes = docstore.Query{
	OrderBy:    quiz.FieldCreatedOn,
	Descending: true,
	Limit:      10,
}

// QuizLister queries the quizzes collection directly.
type QuizLister interface {
	Query(ctx context.Context, q docstore.Query) ([]quiz.Quiz, error)
}

// QuizHandler handles HTTP requests for quiz operations
type QuizHandler struct {
	repo   document.Repository[quiz.Quiz]
	lister QuizLister
	log    *zap.Logger
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(repo document.Repository[quiz.Quiz], lister QuizLister, log *zap.Logger) *QuizHandler {
	return &QuizHandler{
		repo:   repo,
		lister: lister,
		log:    log,
	}
}

// CreateQuiz handles POST /quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	req, ok := validation.Payload[CreateQuizRequest](c)
	if !ok {
		c.JSON(http.StatusInternalServerError, emptyBody)
		return
	}

	res := h.repo.Create(c.Request.Context(), req.ToQuiz())
	if res.Data != nil {
		logger.WithContext(c.Request.Context(), h.log).Info("quiz created", zap.String("id", res.Data.ID))
	}
	writeResult(c, res)
}

// GetQuiz handles GET /quizzes/:quizId
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	writeResult(c, h.repo.Get(c.Request.Context(), id))
}

// UpdateQuiz handles PATCH /quizzes/:quizId
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	req, ok := validation.Payload[UpdateQuizRequest](c)
	if !ok {
		c.JSON(http.StatusInternalServerError, emptyBody)
		return
	}

	writeResult(c, h.repo.Update(c.Request.Context(), id, req.Fields()))
}

// DeleteQuiz handles DELETE /quizzes/:quizId
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := pathID(c, "quizId")
	if !ok {
		return
	}

	res := h.repo.Delete(c.Request.Context(), id)
	if res.Status == document.StatusOK {
		logger.WithContext(c.Request.Context(), h.log).Info("quiz deleted", zap.String("id", id))
	}
	writeResult(c, res)
}

// ListQuizzes handles GET /quizzes. It returns the ten newest quizzes.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.lister.Query(c.Request.Context(), recentQuizzes)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("failed to list quizzes", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}
