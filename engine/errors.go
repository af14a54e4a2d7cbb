package engine

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrExpiredWindow      = errors.New("submission window has expired")
	ErrAttemptFinalized   = errors.New("attempt has already been finalized")
	ErrCodeSpaceExhausted = errors.New("certificate code space exhausted")
)

const (
	DenyProfileIncomplete   = "profile incomplete"
	DenyUpgradeRequired     = "upgrade required"
	DenySubscriptionLapsed  = "subscription inactive"
	DenyInvalidSubscription = "invalid subscription"
	DenyCooldownActive      = "retry cooldown active"
	DenyAttemptInProgress   = "attempt already in progress"
)

// DenialError is an eligibility rejection. Reason is one of the Deny
// constants; MissingFields and DaysRemaining carry the structured detail a
// client needs to render the denial.
type DenialError struct {
	Reason        string
	MissingFields []string
	DaysRemaining int
}

func (e *DenialError) Error() string { return e.Reason }

// ValidationError rejects malformed input (unknown question ids, bad answer
// keys, bank overflow) before any state is touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
