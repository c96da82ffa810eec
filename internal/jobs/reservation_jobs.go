package jobs

import (
	"context"
	"time"

	"smartride-backend/internal/logger"
)

// ExpireReservations marks PENDING reservations whose start date has
// passed without fulfillment as EXPIRED.
func (jr *JobRunner) ExpireReservations() {
	jr.runWithRecovery("ExpireReservations", func() {
		ctx := context.Background()

		expired, err := jr.services.Lifecycle.ExpireReservations(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to expire reservations", "error", err)
			return
		}

		logger.Info("Expired stale reservations", "count", expired)
	})
}
