package pricing

import (
	"testing"
	"time"

	"smartride-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeCharge(t *testing.T) {
	start := date(2024, 6, 1)

	t.Run("Three whole days", func(t *testing.T) {
		got := ComputeCharge(5000, start, date(2024, 6, 4))
		assert.Equal(t, int64(15000), got)
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		due := start.Add(24*time.Hour + time.Hour)
		got := ComputeCharge(5000, start, due)
		assert.Equal(t, int64(10000), got)
	})

	t.Run("Sub-day duration charges minimum one day", func(t *testing.T) {
		got := ComputeCharge(5000, start, start.Add(time.Hour))
		assert.Equal(t, int64(5000), got)
	})

	t.Run("Equal dates charge one day", func(t *testing.T) {
		got := ComputeCharge(5000, start, start)
		assert.Equal(t, int64(5000), got)
	})

	t.Run("Long rental", func(t *testing.T) {
		got := ComputeCharge(4000, start, date(2024, 7, 1))
		assert.Equal(t, int64(120000), got) // 30 days
	})
}

func TestComputeFine(t *testing.T) {
	due := date(2024, 6, 10)

	t.Run("Returned on due date", func(t *testing.T) {
		assert.Equal(t, int64(0), ComputeFine(due, due, 2000))
	})

	t.Run("Returned early", func(t *testing.T) {
		assert.Equal(t, int64(0), ComputeFine(due, date(2024, 6, 8), 2000))
	})

	t.Run("Three days late", func(t *testing.T) {
		assert.Equal(t, int64(6000), ComputeFine(due, date(2024, 6, 13), 2000))
	})

	t.Run("Partial overdue day counts as a full day", func(t *testing.T) {
		ret := due.Add(5 * time.Hour)
		assert.Equal(t, int64(2000), ComputeFine(due, ret, 2000))
	})
}

func TestIsOverdue(t *testing.T) {
	due := date(2024, 6, 10)

	assert.False(t, IsOverdue(due, due, domain.RentalStatusActive))
	assert.True(t, IsOverdue(due, date(2024, 6, 11), domain.RentalStatusActive))
	assert.False(t, IsOverdue(due, date(2024, 6, 11), domain.RentalStatusCompleted))
	assert.False(t, IsOverdue(due, date(2024, 6, 9), domain.RentalStatusActive))
}

func TestOverdueDays(t *testing.T) {
	due := date(2024, 6, 10)

	assert.Equal(t, int64(0), OverdueDays(due, due))
	assert.Equal(t, int64(3), OverdueDays(due, date(2024, 6, 13)))
	assert.Equal(t, int64(1), OverdueDays(due, due.Add(time.Minute)))
}
