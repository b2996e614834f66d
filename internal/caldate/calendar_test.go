package caldate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	start := Day(2022, 1, 1)
	end := Day(2023, 1, 1)
	assert.Equal(t, 365, DaysBetween(start, end))
}

func TestDeltaMonths(t *testing.T) {
	assert.Equal(t, 12, DeltaMonths(Day(2023, 1, 1), Day(2022, 1, 1)))
	assert.Equal(t, -1, DeltaMonths(Day(2022, 1, 1), Day(2022, 2, 1)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(Day(2022, 1, 15)))
	assert.Equal(t, 28, DaysInMonth(Day(2022, 2, 10)))
	assert.Equal(t, 29, DaysInMonth(Day(2024, 2, 10)))
}

func TestDateRange(t *testing.T) {
	var days []time.Time
	start := Day(2022, 1, 29)
	end := Day(2022, 2, 2)
	DateRange(start, end, func(d time.Time) bool {
		days = append(days, d)
		return true
	})
	assert.Len(t, days, 5)
	assert.True(t, days[0].Equal(start))
	assert.True(t, days[len(days)-1].Equal(end))
}

func TestDiffSurroundingDates(t *testing.T) {
	// base after the 24th: boundary-to-boundary distance should be the
	// length of the month containing the 24th-to-24th span.
	got := DiffSurroundingDates(Day(2022, 3, 28), 24)
	assert.True(t, got >= 28 && got <= 31)
}
