package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttemptOngoing = "ongoing"
	AttemptPass    = "pass"
	AttemptFailed  = "failed"
)

// Attempt is one candidate's timed run at a test definition. Pre-selection
// attempts are additionally bound to the Application they screen.
type Attempt struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Track         Track      `gorm:"size:20;not null;index:idx_attempts_run" json:"track"`
	CandidateID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_attempts_run" json:"candidate_id"`
	TestID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_attempts_run" json:"test_id"`
	ApplicationID *uuid.UUID `gorm:"type:uuid" json:"application_id,omitempty"`
	StartedAt     time.Time  `gorm:"not null" json:"started_at"`
	EndDate       time.Time  `gorm:"not null" json:"end_date"`
	Score         int        `gorm:"not null;default:0" json:"score"`
	Status        string     `gorm:"size:20;not null;default:'ongoing'" json:"status"`

	Candidate   User         `gorm:"foreignkey:CandidateID" json:"-"`
	Application *Application `gorm:"foreignkey:ApplicationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Finalized reports whether the attempt reached a terminal status.
func (a *Attempt) Finalized() bool {
	return a.Status == AttemptPass || a.Status == AttemptFailed
}
