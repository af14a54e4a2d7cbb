package jobs

import (
	"context"
	"log"

	"github.com/prasaja/job_portal/engine"
)

var core *engine.Engine

// Init wires the attempt engine the cron entrypoints use.
func Init(e *engine.Engine) {
	core = e
}

// ExpireOverdueAttempts finalizes ongoing attempts whose deadline has passed.
// Scheduled every 5 minutes from main.
func ExpireOverdueAttempts() {
	log.Println("Running job: ExpireOverdueAttempts...")

	expired, err := core.ExpireOverdueAttempts(context.Background())
	if err != nil {
		log.Printf("Error expiring overdue attempts: %v", err)
		return
	}
	if expired == 0 {
		return
	}
	log.Printf("Marked %d overdue attempt(s) as failed.", expired)
}
