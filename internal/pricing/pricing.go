// Package pricing holds the pure money calculations of the rental
// engine: booking charges, overdue fines, and the overdue predicate.
// No I/O happens here; callers fetch records and policy constants and
// pass them in.
package pricing

import (
	"time"

	"smartride-backend/internal/domain"
)

const day = 24 * time.Hour

// daysCeil returns the number of whole days from a to b, rounding any
// partial day up. Returns 0 when b is not after a.
func daysCeil(a, b time.Time) int64 {
	d := b.Sub(a)
	if d <= 0 {
		return 0
	}
	days := int64(d / day)
	if d%day > 0 {
		days++
	}
	return days
}

// ComputeCharge returns the total booking charge: the daily rate times
// the rental duration in whole days, rounded up, minimum one day.
// The rate is the one in effect at booking time; the result is stored
// on the rental and never recomputed.
func ComputeCharge(rateCents int64, start, due time.Time) int64 {
	days := daysCeil(start, due)
	if days < 1 {
		days = 1
	}
	return rateCents * days
}

// ComputeFine returns the overdue fine for a rental due at due and
// returned (or evaluated) at ret. Zero when ret does not exceed due.
// The penalty rate is a deployment-wide policy constant, not
// per-vehicle.
func ComputeFine(due, ret time.Time, penaltyPerDayCents int64) int64 {
	return penaltyPerDayCents * daysCeil(due, ret)
}

// OverdueDays returns how many whole days past due asOf is, zero when
// not overdue.
func OverdueDays(due, asOf time.Time) int64 {
	return daysCeil(due, asOf)
}

// IsOverdue reports whether an open rental has passed its due date.
// Completed rentals are never overdue.
func IsOverdue(due, today time.Time, status domain.RentalStatus) bool {
	return status == domain.RentalStatusActive && today.After(due)
}
