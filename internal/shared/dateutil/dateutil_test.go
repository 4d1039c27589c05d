package dateutil_test

import (
	"testing"
	"time"

	"go-hrops/internal/shared/dateutil"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountWorkingDays(t *testing.T) {
	t.Run("full week monday to friday", func(t *testing.T) {
		assert.Equal(t, 5, dateutil.CountWorkingDays(day(2026, time.March, 2), day(2026, time.March, 6)))
	})

	t.Run("friday through monday skips the weekend", func(t *testing.T) {
		assert.Equal(t, 2, dateutil.CountWorkingDays(day(2026, time.March, 6), day(2026, time.March, 9)))
	})

	t.Run("weekend only is zero", func(t *testing.T) {
		assert.Equal(t, 0, dateutil.CountWorkingDays(day(2026, time.March, 7), day(2026, time.March, 8)))
	})

	t.Run("single weekday is one", func(t *testing.T) {
		assert.Equal(t, 1, dateutil.CountWorkingDays(day(2026, time.March, 4), day(2026, time.March, 4)))
	})
}

func TestWeekdaysBetween(t *testing.T) {
	days := dateutil.WeekdaysBetween(
		time.Date(2026, time.March, 6, 15, 30, 0, 0, time.UTC),
		time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC),
	)

	// Timestamps are normalized to calendar days before walking the range.
	assert.Equal(t, []time.Time{day(2026, time.March, 6), day(2026, time.March, 9)}, days)
}

func TestMonthBounds(t *testing.T) {
	first, last := dateutil.MonthBounds(time.February, 2026)
	assert.Equal(t, day(2026, time.February, 1), first)
	assert.Equal(t, day(2026, time.February, 28), last)
}
