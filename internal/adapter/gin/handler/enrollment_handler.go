package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-service/internal/usecase/enrollment"
)

// EnrollmentHandler handles HTTP requests that enroll users in quizzes
type EnrollmentHandler struct {
	uc  enrollment.Usecase
	log *zap.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler instance
func NewEnrollmentHandler(uc enrollment.Usecase, log *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		uc:  uc,
		log: log,
	}
}

// Enroll handles POST /users/:userId/quizzes/:quizId. The body is ignored.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}

	resp, err := h.uc.Enroll(c.Request.Context(), enrollment.EnrollRequest{
		UserID: userID,
		QuizID: quizID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
