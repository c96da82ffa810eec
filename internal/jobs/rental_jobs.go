package jobs

import (
	"context"
	"time"

	"smartride-backend/internal/logger"
	"smartride-backend/internal/pricing"
)

// SendOverdueReminders emails every customer holding a rental past its
// due date. Overdue is derived, not stored, so the sweep only reads;
// the fine itself is assessed when the vehicle comes back. The accrued
// amount quoted here uses the same pricing calculation as the return,
// so the reminder never disagrees with the charge.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.services.Reports.OverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to load overdue rentals", "error", err)
			return
		}

		now := time.Now().UTC()
		penalty := jr.config.Pricing.PenaltyPerDayCents
		sent := 0
		for _, od := range overdue {
			days := pricing.OverdueDays(od.Rental.DueDate, now)
			accrued := pricing.ComputeFine(od.Rental.DueDate, now, penalty)
			err := jr.services.Email.SendOverdueReminder(ctx, od.Email, od.CustomerName, od.PlateNo, days, accrued)
			if err != nil {
				logger.Error("Failed to send overdue reminder",
					"rental_id", od.Rental.ID,
					"email", od.Email,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "overdue", len(overdue), "sent", sent)
	})
}
