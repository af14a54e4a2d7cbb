package models

import (
	"time"

	"github.com/google/uuid"
)

type PreSelectionTest struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_company_test_name" json:"company_id"`
	Name            string    `gorm:"size:255;not null;uniqueIndex:uniq_company_test_name,where:deleted = false" json:"name"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`
	PassingGrade    int       `gorm:"not null;default:85" json:"passing_grade"`
	Deleted         bool      `gorm:"not null;default:false" json:"-"`

	Company User `gorm:"foreignkey:CompanyID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
