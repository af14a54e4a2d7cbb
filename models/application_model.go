package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationOnTest            = "onTest"
	ApplicationWaitingSubmission = "waitingSubmission"
	ApplicationRejected          = "rejected"
	ApplicationFailed            = "failed"
)

// Application is a job candidacy whose status is advanced by pre-selection
// attempt outcomes.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Status      string    `gorm:"size:30;not null;default:'onTest'" json:"status"`

	Job       Job  `gorm:"foreignkey:JobID" json:"-"`
	Candidate User `gorm:"foreignkey:CandidateID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
