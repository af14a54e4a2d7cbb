package models

import (
	"time"

	"github.com/google/uuid"
)

type SkillAssessment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DeveloperID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_developer_assessment_name" json:"developer_id"`
	Name            string    `gorm:"size:255;not null;uniqueIndex:uniq_developer_assessment_name,where:deleted = false" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	BadgeURL        *string   `gorm:"size:255" json:"badge_url"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`
	PassingGrade    int       `gorm:"not null;default:75" json:"passing_grade"`
	Deleted         bool      `gorm:"not null;default:false" json:"-"`

	Developer User `gorm:"foreignkey:DeveloperID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
