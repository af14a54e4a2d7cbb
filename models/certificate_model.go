package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is the shareable proof minted for a passed skill assessment.
type Certificate struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code         string    `gorm:"size:10;not null;unique" json:"code"`
	AttemptID    uuid.UUID `gorm:"type:uuid;not null;unique" json:"attempt_id"`
	CandidateID  uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	AssessmentID uuid.UUID `gorm:"type:uuid;not null" json:"assessment_id"`
	Issuer       string    `gorm:"size:100;not null" json:"issuer"`
	DocumentURL  *string   `gorm:"type:text" json:"document_url"`
	IssuedAt     time.Time `gorm:"not null" json:"issued_at"`

	Attempt    Attempt         `gorm:"foreignkey:AttemptID" json:"-"`
	Candidate  User            `gorm:"foreignkey:CandidateID" json:"-"`
	Assessment SkillAssessment `gorm:"foreignkey:AssessmentID" json:"-"`
}
