package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartride-backend/internal/config"
	"smartride-backend/internal/domain"
	"smartride-backend/internal/pricing"
	"smartride-backend/internal/repository"
	"smartride-backend/internal/service"
)

type stubReports struct {
	service.ReportService
	overdue []repository.OverdueRental
	err     error
}

func (s *stubReports) OverdueRentals(_ context.Context) ([]repository.OverdueRental, error) {
	return s.overdue, s.err
}

type sentReminder struct {
	to          string
	daysOverdue int64
	accrued     int64
}

type stubEmail struct {
	service.EmailService
	failFor   string
	reminders []sentReminder
}

func (s *stubEmail) SendOverdueReminder(_ context.Context, to, _, _ string, daysOverdue, accruedFineCents int64) error {
	if to == s.failFor {
		return errors.New("smtp unavailable")
	}
	s.reminders = append(s.reminders, sentReminder{to: to, daysOverdue: daysOverdue, accrued: accruedFineCents})
	return nil
}

func jobConfig(penaltyCents int64) *config.Config {
	return &config.Config{Pricing: config.PricingConfig{PenaltyPerDayCents: penaltyCents}}
}

func overdueRow(rentalID int64, due time.Time, staleDays int64, email string) repository.OverdueRental {
	return repository.OverdueRental{
		Rental:       domain.Rental{ID: rentalID, DueDate: due, Status: domain.RentalStatusActive},
		CustomerName: "Dana Reyes",
		Email:        email,
		PlateNo:      "KA-01-1234",
		DaysOverdue:  staleDays,
	}
}

func TestJobRunner_SendOverdueReminders(t *testing.T) {
	t.Run("ReminderMatchesReturnFine", func(t *testing.T) {
		// Due 49h ago: two whole days plus a partial, so three
		// chargeable days regardless of what the projection counted.
		due := time.Now().UTC().Add(-49 * time.Hour)
		reports := &stubReports{overdue: []repository.OverdueRental{
			overdueRow(101, due, 2, "dana@example.com"),
		}}
		email := &stubEmail{}

		jr := NewJobRunner(nil, nil, &Services{Email: email, Reports: reports}, jobConfig(2000))
		jr.SendOverdueReminders()

		require.Len(t, email.reminders, 1)
		got := email.reminders[0]
		assert.Equal(t, int64(3), got.daysOverdue)
		assert.Equal(t, int64(6000), got.accrued)
		assert.Equal(t, pricing.ComputeFine(due, time.Now().UTC(), 2000), got.accrued)
	})

	t.Run("SendFailureDoesNotStopSweep", func(t *testing.T) {
		due := time.Now().UTC().Add(-30 * time.Hour)
		reports := &stubReports{overdue: []repository.OverdueRental{
			overdueRow(101, due, 2, "bounce@example.com"),
			overdueRow(102, due, 2, "dana@example.com"),
		}}
		email := &stubEmail{failFor: "bounce@example.com"}

		jr := NewJobRunner(nil, nil, &Services{Email: email, Reports: reports}, jobConfig(2000))
		jr.SendOverdueReminders()

		require.Len(t, email.reminders, 1)
		assert.Equal(t, "dana@example.com", email.reminders[0].to)
	})
}
