package models

import (
	"time"

	"github.com/google/uuid"
)

// Question belongs to exactly one test definition, identified by (Track, TestID).
type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TestID        uuid.UUID `gorm:"type:uuid;not null;index:idx_questions_test" json:"test_id"`
	Track         Track     `gorm:"size:20;not null;index:idx_questions_test" json:"-"`
	Prompt        string    `gorm:"type:text;not null" json:"question"`
	Answer1       string    `gorm:"column:answer_1;type:text;not null" json:"answer_1"`
	Answer2       string    `gorm:"column:answer_2;type:text;not null" json:"answer_2"`
	Answer3       string    `gorm:"column:answer_3;type:text;not null" json:"answer_3"`
	Answer4       string    `gorm:"column:answer_4;type:text;not null" json:"answer_4"`
	CorrectAnswer string    `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
