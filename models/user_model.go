package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleJobhunter = "jobhunter"
	RoleCompany   = "company"
	RoleDeveloper = "developer"
)

const (
	TierFree         = "free"
	TierStandard     = "standard"
	TierProfessional = "professional"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'jobhunter'" json:"role"`

	// jobhunter profile, required before any pre-selection attempt
	Gender      *string    `gorm:"size:20" json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	City        *string    `gorm:"size:100" json:"city"`
	Province    *string    `gorm:"size:100" json:"province"`
	ResumeURL   *string    `gorm:"size:255" json:"resume_url"`

	CompanyName *string `gorm:"size:255" json:"company_name,omitempty"`

	SubscriptionTier     string     `gorm:"size:20;not null;default:'free'" json:"subscription_tier"`
	SubscriptionEndsAt   *time.Time `json:"subscription_ends_at"`
	AssessmentStartCount int        `gorm:"not null;default:0" json:"assessment_start_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriptionActive reports whether the user holds a paid subscription that
// has not lapsed. The payment flow that sets these fields lives elsewhere.
func (u *User) SubscriptionActive(now time.Time) bool {
	return u.SubscriptionTier != TierFree &&
		u.SubscriptionEndsAt != nil &&
		now.Before(*u.SubscriptionEndsAt)
}

// MissingProfileFields lists the profile fields a jobhunter must fill in
// before joining a pre-selection test.
func (u *User) MissingProfileFields() []string {
	var missing []string
	if u.FullName == "" {
		missing = append(missing, "full_name")
	}
	if u.Gender == nil || *u.Gender == "" {
		missing = append(missing, "gender")
	}
	if u.DateOfBirth == nil {
		missing = append(missing, "date_of_birth")
	}
	if u.City == nil || *u.City == "" {
		missing = append(missing, "city")
	}
	if u.Province == nil || *u.Province == "" {
		missing = append(missing, "province")
	}
	return missing
}
