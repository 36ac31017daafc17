package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quiz-service/internal/adapter/repository/document"
	"quiz-service/internal/domain/quiz"
	"quiz-service/internal/usecase/enrollment"
	"quiz-service/pkg/docstore"
)

type MockRepository[T docstore.Document] struct {
	mock.Mock
}

func (m *MockRepository[T]) Create(ctx context.Context, doc *T) document.Result[T] {
	return m.Called(ctx, doc).Get(0).(document.Result[T])
}

func (m *MockRepository[T]) Get(ctx context.Context, id string) document.Result[T] {
	return m.Called(ctx, id).Get(0).(document.Result[T])
}

func (m *MockRepository[T]) Update(ctx context.Context, id string, fields docstore.Fields) document.Result[T] {
	return m.Called(ctx, id, fields).Get(0).(document.Result[T])
}

func (m *MockRepository[T]) Delete(ctx context.Context, id string) document.Result[T] {
	return m.Called(ctx, id).Get(0).(document.Result[T])
}

type MockQuizLister struct {
	mock.Mock
}

func (m *MockQuizLister) Query(ctx context.Context, q docstore.Query) ([]quiz.Quiz, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quiz.Quiz), args.Error(1)
}

type MockEnrollment struct {
	mock.Mock
}

func (m *MockEnrollment) Enroll(ctx context.Context, in enrollment.EnrollRequest) (*enrollment.EnrollResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.EnrollResponse), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
