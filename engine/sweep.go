package engine

import (
	"context"

	"github.com/prasaja/job_portal/models"
)

// ExpireOverdueAttempts finalizes every ongoing attempt whose deadline has
// passed as failed, keeping whatever score was last autosaved. Pre-selection
// attempts reject their bound application in the same transaction. Returns
// the number of attempts finalized.
func (e *Engine) ExpireOverdueAttempts(ctx context.Context) (int, error) {
	overdue, err := e.store.OverdueAttempts(ctx, e.now())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, att := range overdue {
		fin := Finalization{
			AttemptID: att.ID,
			Score:     att.Score,
			Status:    models.AttemptFailed,
		}
		if att.ApplicationID != nil {
			fin.ApplicationID = att.ApplicationID
			fin.ApplicationStatus = models.ApplicationRejected
		}
		updated, err := e.store.FinalizeAttempt(ctx, fin)
		if err != nil {
			return expired, err
		}
		if updated {
			expired++
		}
	}
	return expired, nil
}
