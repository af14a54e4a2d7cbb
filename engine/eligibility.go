package engine

import (
	"time"

	"github.com/prasaja/job_portal/models"
)

// CooldownDays is the waiting period after a failed attempt before the same
// candidate may retry the same test.
const CooldownDays = 7

// cooldownRemaining returns the whole days left before a candidate may retry
// after a failure that ended at endDate, or 0 when the cooldown has elapsed.
func cooldownRemaining(endDate, now time.Time) int {
	passed := int(now.Sub(endDate).Hours() / 24)
	if passed < 0 {
		passed = 0
	}
	if passed >= CooldownDays {
		return 0
	}
	return CooldownDays - passed
}

// checkProfile is the pre-selection gate: the candidate profile must be
// complete before joining a test.
func checkProfile(cand *models.User) error {
	if missing := cand.MissingProfileFields(); len(missing) > 0 {
		return &DenialError{Reason: DenyProfileIncomplete, MissingFields: missing}
	}
	return nil
}

// StandardTierStartLimit caps lifetime assessment starts on the standard tier.
const StandardTierStartLimit = 2

// checkSubscription is the skill-assessment gate. Free is always denied,
// standard is limited to StandardTierStartLimit lifetime starts, professional
// is unlimited; anything else is an invalid subscription.
func checkSubscription(cand *models.User, now time.Time) error {
	if cand.SubscriptionTier == models.TierFree {
		return &DenialError{Reason: DenyUpgradeRequired}
	}
	if !cand.SubscriptionActive(now) {
		return &DenialError{Reason: DenySubscriptionLapsed}
	}
	switch cand.SubscriptionTier {
	case models.TierStandard:
		if cand.AssessmentStartCount >= StandardTierStartLimit {
			return &DenialError{Reason: DenyUpgradeRequired}
		}
	case models.TierProfessional:
	default:
		return &DenialError{Reason: DenyInvalidSubscription}
	}
	return nil
}
