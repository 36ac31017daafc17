package quiz

import (
	"time"

	"gorm.io/gorm"

	"quiz-service/pkg/docstore"
)

// Column names used in merge payloads.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldActive      = "active"
	FieldUserCount   = "user_count"
	FieldCreatedOn   = "created_on"
)

// Quiz represents a quiz document in the quizzes collection.
type Quiz struct {
	ID          string    `json:"id" gorm:"column:id;primaryKey;size:36"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description *string   `json:"description,omitempty" gorm:"column:description"`
	Active      bool      `json:"active" gorm:"column:active;not null;default:false"`
	UserCount   int64     `json:"userCount" gorm:"column:user_count;not null;default:0"`
	CreatedOn   time.Time `json:"createdOn" gorm:"column:created_on;not null;index"`
}

// TableName implements docstore.Document.
func (Quiz) TableName() string {
	return "quizzes"
}

// DocumentID implements docstore.Document.
func (q Quiz) DocumentID() string {
	return q.ID
}

// BeforeCreate assigns the document id and stamps CreatedOn with the store
// clock unless the caller supplied one.
func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	q.ID = docstore.NewID()
	if q.CreatedOn.IsZero() {
		q.CreatedOn = docstore.ServerTime(tx)
	}
	return nil
}
