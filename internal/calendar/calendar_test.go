package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart_SnapsToSunday(t *testing.T) {
	wed := time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC)

	start := WeekStart(wed)

	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, "2024-01-07", DateKey(start))
	assert.Zero(t, start.Hour())
}

func TestWeekStart_SundayIsItsOwnStart(t *testing.T) {
	sun := time.Date(2024, time.January, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-07", DateKey(WeekStart(sun)))
}

func TestWeekDayKeys(t *testing.T) {
	start := time.Date(2024, time.December, 29, 0, 0, 0, 0, time.UTC)

	keys := WeekDayKeys(start)

	require.Len(t, keys, DaysPerWeek)
	assert.Equal(t, "2024-12-29", keys[0])
	assert.Equal(t, "2025-01-04", keys[6])
}

func TestInWeek(t *testing.T) {
	start := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)

	assert.True(t, InWeek(start, "2024-01-07"))
	assert.True(t, InWeek(start, "2024-01-13"))
	assert.False(t, InWeek(start, "2024-01-14"))
	assert.False(t, InWeek(start, "2024-01-06"))
	assert.False(t, InWeek(start, "not-a-date"))
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d.Weekday())

	_, err = ParseDateKey("01/07/2024")
	require.Error(t, err)
}

func TestFormatting(t *testing.T) {
	start := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Jan 7 - Jan 13, 2024", DateRange(start))
	assert.Equal(t, "Sun Jan 07 2024", WeekOf(start))
	assert.Equal(t, "Sunday", DayName(start))
}
