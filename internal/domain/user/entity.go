package user

import (
	"slices"

	"gorm.io/gorm"

	"quiz-service/pkg/docstore"
)

// Column names used in merge payloads.
const (
	FieldName    = "name"
	FieldQuizIDs = "quiz_ids"
)

// User represents a user document in the users collection.
type User struct {
	ID      string             `json:"id" gorm:"column:id;primaryKey;size:36"`
	Name    string             `json:"name" gorm:"column:name;not null"`
	QuizIDs docstore.StringSet `json:"quizIds" gorm:"column:quiz_ids;not null"`
}

// TableName implements docstore.Document.
func (User) TableName() string {
	return "users"
}

// DocumentID implements docstore.Document.
func (u User) DocumentID() string {
	return u.ID
}

// BeforeCreate assigns the document id. Callers never choose it.
func (u *User) BeforeCreate(*gorm.DB) error {
	u.ID = docstore.NewID()
	if u.QuizIDs == nil {
		u.QuizIDs = docstore.StringSet{}
	}
	return nil
}

// IsEnrolled reports whether quizID is in the user's quiz list.
func (u *User) IsEnrolled(quizID string) bool {
	return slices.Contains(u.QuizIDs, quizID)
}
