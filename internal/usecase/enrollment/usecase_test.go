package enrollment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"quiz-service/internal/domain/quiz"
	"quiz-service/internal/domain/user"
	"quiz-service/pkg/docstore"
	"quiz-service/pkg/docstore/docstoretest"
	apperrors "quiz-service/pkg/errors"
)

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, ids ...string) {
	m.Called(ctx, ids)
}

type fixture struct {
	store   *docstore.Store
	users   *docstore.Collection[user.User]
	quizzes *docstore.Collection[quiz.Quiz]
}

func setup(t *testing.T) fixture {
	store := docstoretest.New(t, docstoretest.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), &user.User{}, &quiz.Quiz{})
	return fixture{
		store:   store,
		users:   docstore.NewCollection[user.User](store),
		quizzes: docstore.NewCollection[quiz.Quiz](store),
	}
}

func (f fixture) addUser(t *testing.T, name string) string {
	id, err := f.users.Add(context.Background(), &user.User{Name: name})
	require.NoError(t, err)
	return id
}

func (f fixture) addQuiz(t *testing.T, name string) string {
	id, err := f.quizzes.Add(context.Background(), &quiz.Quiz{Name: name})
	require.NoError(t, err)
	return id
}

func TestEnroll_Success(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.addUser(t, "Ada")
	quizID := f.addQuiz(t, "Go")

	svc := New(f.store, nil, nil, zaptest.NewLogger(t))

	out, err := svc.Enroll(ctx, EnrollRequest{UserID: userID, QuizID: quizID})
	require.NoError(t, err)
	assert.Equal(t, docstore.StringSet{quizID}, out.User.QuizIDs)
	assert.Equal(t, int64(1), out.Quiz.UserCount)

	stored, err := f.quizzes.Get(ctx, quizID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.UserCount)
}

func TestEnroll_AlreadyEnrolled(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.addUser(t, "Ada")
	quizID := f.addQuiz(t, "Go")

	svc := New(f.store, nil, nil, zaptest.NewLogger(t))
	_, err := svc.Enroll(ctx, EnrollRequest{UserID: userID, QuizID: quizID})
	require.NoError(t, err)

	out, err := svc.Enroll(ctx, EnrollRequest{UserID: userID, QuizID: quizID})
	assert.Nil(t, out)
	var existsErr *apperrors.AlreadyExistsError
	require.ErrorAs(t, err, &existsErr)

	q, err := f.quizzes.Get(ctx, quizID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.UserCount)

	u, err := f.users.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, docstore.StringSet{quizID}, u.QuizIDs)
}

func TestEnroll_NotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.addUser(t, "Ada")
	quizID := f.addQuiz(t, "Go")

	svc := New(f.store, nil, nil, zaptest.NewLogger(t))

	tests := []struct {
		name     string
		req      EnrollRequest
		resource string
	}{
		{name: "missing user", req: EnrollRequest{UserID: "nope", QuizID: quizID}, resource: "user"},
		{name: "missing quiz", req: EnrollRequest{UserID: userID, QuizID: "nope"}, resource: "quiz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Enroll(ctx, tt.req)

			var notFound *apperrors.NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.resource, notFound.Resource)
		})
	}

	u, err := f.users.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, u.QuizIDs, "no partial writes")
}

func TestEnroll_ConcurrentDistinctUsers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	quizID := f.addQuiz(t, "Go")

	const n = 10
	userIDs := make([]string, n)
	for i := range userIDs {
		userIDs[i] = f.addUser(t, fmt.Sprintf("user-%d", i))
	}

	svc := New(f.store, nil, nil, zaptest.NewLogger(t))

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range userIDs {
		id := id
		g.Go(func() error {
			_, err := svc.Enroll(gctx, EnrollRequest{UserID: id, QuizID: quizID})
			return err
		})
	}
	require.NoError(t, g.Wait())

	q, err := f.quizzes.Get(ctx, quizID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), q.UserCount)
}

func TestEnroll_ConcurrentSameUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.addUser(t, "Ada")
	quizID := f.addQuiz(t, "Go")

	svc := New(f.store, nil, nil, zaptest.NewLogger(t))

	const n = 10
	errs := make([]error, n)
	var g errgroup.Group
	for i := range errs {
		i := i
		g.Go(func() error {
			_, errs[i] = svc.Enroll(ctx, EnrollRequest{UserID: userID, QuizID: quizID})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var exists *apperrors.AlreadyExistsError
		assert.ErrorAs(t, err, &exists)
	}
	assert.Equal(t, 1, succeeded)

	q, err := f.quizzes.Get(ctx, quizID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.UserCount)

	u, err := f.users.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, docstore.StringSet{quizID}, u.QuizIDs)
}

func TestEnroll_InvalidatesCaches(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.addUser(t, "Ada")
	quizID := f.addQuiz(t, "Go")

	userCache := new(MockInvalidator)
	quizCache := new(MockInvalidator)
	userCache.On("Invalidate", mock.Anything, []string{userID}).Once()
	quizCache.On("Invalidate", mock.Anything, []string{quizID}).Once()

	svc := New(f.store, userCache, quizCache, zaptest.NewLogger(t))
	_, err := svc.Enroll(ctx, EnrollRequest{UserID: userID, QuizID: quizID})
	require.NoError(t, err)

	userCache.AssertExpectations(t)
	quizCache.AssertExpectations(t)

	// a rejected enrollment writes nothing and evicts nothing
	_, err = svc.Enroll(ctx, EnrollRequest{UserID: userID, QuizID: quizID})
	require.Error(t, err)
	userCache.AssertNumberOfCalls(t, "Invalidate", 1)
}

func TestEnroll_StoreFailure(t *testing.T) {
	db := docstoretest.Open(t, nil)
	store := docstore.New(db, zaptest.NewLogger(t))
	require.NoError(t, store.Migrate(context.Background(), &user.User{}, &quiz.Quiz{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	svc := New(store, nil, nil, zaptest.NewLogger(t))
	_, err = svc.Enroll(context.Background(), EnrollRequest{UserID: "u", QuizID: "q"})

	var internal *apperrors.InternalError
	assert.ErrorAs(t, err, &internal)
}
