package enrollment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"quiz-service/internal/domain/quiz"
	"quiz-service/internal/domain/user"
	"quiz-service/pkg/docstore"
	apperrors "quiz-service/pkg/errors"
	"quiz-service/pkg/logger"
)

// Service enrolls users in quizzes. Both documents change in one transaction:
// the quiz id is added to the user's quizIds and the quiz's userCount goes up
// by one, or nothing changes at all.
type Service struct {
	store     *docstore.Store
	users     *docstore.Collection[user.User]
	quizzes   *docstore.Collection[quiz.Quiz]
	userCache Invalidator
	quizCache Invalidator
	log       *zap.Logger
}

// New creates the enrollment service. The invalidators may be nil when
// caching is disabled.
func New(store *docstore.Store, userCache, quizCache Invalidator, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		users:     docstore.NewCollection[user.User](store),
		quizzes:   docstore.NewCollection[quiz.Quiz](store),
		userCache: userCache,
		quizCache: quizCache,
		log:       log,
	}
}

// Enroll adds in.QuizID to the user's quizzes and counts the user on the quiz.
//
// Errors: *apperrors.NotFoundError when either document is missing,
// *apperrors.AlreadyExistsError when the user is already enrolled, and
// *apperrors.InternalError for store failures.
func (s *Service) Enroll(ctx context.Context, in EnrollRequest) (*EnrollResponse, error) {
	log := logger.WithContext(ctx, s.log).With(zap.String("user_id", in.UserID), zap.String("quiz_id", in.QuizID))

	var out EnrollResponse
	err := s.store.RunTransaction(ctx, func(tx *docstore.Tx) error {
		users := s.users.In(tx)
		quizzes := s.quizzes.In(tx)

		// user before quiz, always, so concurrent enrollments lock in the same order
		u, err := users.GetForUpdate(ctx, in.UserID)
		if err != nil {
			return notFound("user", err)
		}
		q, err := quizzes.GetForUpdate(ctx, in.QuizID)
		if err != nil {
			return notFound("quiz", err)
		}

		if u.IsEnrolled(q.ID) {
			return apperrors.NewAlreadyExistsError("enrollment", "user is already enrolled in this quiz")
		}

		if err := users.Update(ctx, u.ID, docstore.Fields{user.FieldQuizIDs: docstore.ArrayUnion(q.ID)}); err != nil {
			return err
		}
		if err := quizzes.Update(ctx, q.ID, docstore.Fields{quiz.FieldUserCount: docstore.Increment(1)}); err != nil {
			return err
		}

		if out.User, err = users.Get(ctx, u.ID); err != nil {
			return err
		}
		out.Quiz, err = quizzes.Get(ctx, q.ID)
		return err
	})
	if err != nil {
		var notFoundErr *apperrors.NotFoundError
		var existsErr *apperrors.AlreadyExistsError
		switch {
		case errors.As(err, &notFoundErr):
			log.Info("enrollment target not found", zap.String("resource", notFoundErr.Resource))
			return nil, notFoundErr
		case errors.As(err, &existsErr):
			log.Info("user already enrolled")
			return nil, existsErr
		default:
			log.Error("enrollment failed", zap.Error(err))
			return nil, apperrors.NewInternalError("failed to enroll user", err)
		}
	}

	if s.userCache != nil {
		s.userCache.Invalidate(ctx, in.UserID)
	}
	if s.quizCache != nil {
		s.quizCache.Invalidate(ctx, in.QuizID)
	}

	log.Info("user enrolled", zap.Int64("user_count", out.Quiz.UserCount))
	return &out, nil
}

func notFound(resource string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return apperrors.NewNotFoundError(resource, "")
	}
	return fmt.Errorf("failed to read %s: %w", resource, err)
}
