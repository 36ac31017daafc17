package enrollment

import (
	"quiz-service/internal/domain/quiz"
	"quiz-service/internal/domain/user"
)

// EnrollRequest names the user to enroll and the quiz to enroll them in.
type EnrollRequest struct {
	UserID string
	QuizID string
}

// EnrollResponse holds both documents as they are after the enrollment.
type EnrollResponse struct {
	Quiz *quiz.Quiz `json:"quiz"`
	User *user.User `json:"user"`
}
