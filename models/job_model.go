package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is the minimal posting surface a pre-selection test attaches to.
// Full job-board CRUD lives outside this service.
type Job struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	PreSelectionTestID *uuid.UUID `gorm:"type:uuid" json:"pre_selection_test_id"`

	Company          User              `gorm:"foreignkey:CompanyID" json:"-"`
	PreSelectionTest *PreSelectionTest `gorm:"foreignkey:PreSelectionTestID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
