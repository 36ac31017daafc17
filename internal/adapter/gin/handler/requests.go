package handler

import (
	"time"

	"quiz-service/internal/domain/quiz"
	"quiz-service/internal/domain/user"
	"quiz-service/pkg/docstore"
)

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name    string   `json:"name" validate:"required,min=1"`
	QuizIDs []string `json:"quizIds" validate:"omitempty,unique,dive,min=1"`
}

// ApplyDefaults implements validation.Defaulter.
func (r *CreateUserRequest) ApplyDefaults() {
	if r.QuizIDs == nil {
		r.QuizIDs = []string{}
	}
}

// ToUser builds the document to insert.
func (r *CreateUserRequest) ToUser() *user.User {
	return &user.User{
		Name:    r.Name,
		QuizIDs: docstore.StringSet(r.QuizIDs),
	}
}

// CreateQuizRequest represents the HTTP request body for creating a quiz
type CreateQuizRequest struct {
	Name        string     `json:"name" validate:"required,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Active      *bool      `json:"active"`
	UserCount   *int64     `json:"userCount" validate:"omitempty,min=0"`
	CreatedOn   *time.Time `json:"createdOn"`
}

// ApplyDefaults implements validation.Defaulter. An absent createdOn is left
// nil so the store stamps it.
func (r *CreateQuizRequest) ApplyDefaults() {
	if r.Active == nil {
		r.Active = new(bool)
	}
	if r.UserCount == nil {
		r.UserCount = new(int64)
	}
}

// ToQuiz builds the document to insert.
func (r *CreateQuizRequest) ToQuiz() *quiz.Quiz {
	q := &quiz.Quiz{
		Name:        r.Name,
		Description: r.Description,
		Active:      *r.Active,
		UserCount:   *r.UserCount,
	}
	if r.CreatedOn != nil {
		q.CreatedOn = r.CreatedOn.UTC()
	}
	return q
}

// UpdateQuizRequest represents the HTTP request body for a partial quiz
// update. userCount and createdOn are not accepted here.
type UpdateQuizRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Active      *bool   `json:"active"`
}

// Fields returns the merge payload holding only the fields that were sent.
func (r *UpdateQuizRequest) Fields() docstore.Fields {
	fields := docstore.Fields{}
	if r.Name != nil {
		fields[quiz.FieldName] = *r.Name
	}
	if r.Description != nil {
		fields[quiz.FieldDescription] = *r.Description
	}
	if r.Active != nil {
		fields[quiz.FieldActive] = *r.Active
	}
	return fields
}
