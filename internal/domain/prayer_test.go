package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrayerDay_BlockedIntervals(t *testing.T) {
	day := &PrayerDay{
		Date:    time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta),
		Fajr:    "04:45",
		Dhuhr:   "12:00",
		Asr:     "15:15",
		Maghrib: "18:10",
		Isha:    "19:20",
	}

	intervals := day.BlockedIntervals(10*time.Minute, jakarta)

	require.Len(t, intervals, 5)

	// Dhuhr 12:00 +- 10 минут: [11:50, 12:10)
	dhuhr := intervals[1]
	assert.Equal(t, time.Date(2026, 3, 10, 11, 50, 0, 0, jakarta), dhuhr.Start)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 10, 0, 0, jakarta), dhuhr.End)

	assert.True(t, dhuhr.Contains(time.Date(2026, 3, 10, 11, 50, 0, 0, jakarta)))
	assert.True(t, dhuhr.Contains(time.Date(2026, 3, 10, 12, 0, 0, 0, jakarta)))
	assert.False(t, dhuhr.Contains(time.Date(2026, 3, 10, 12, 10, 0, 0, jakarta)))
	assert.False(t, dhuhr.Contains(time.Date(2026, 3, 10, 11, 49, 59, 0, jakarta)))
}

func TestPrayerDay_BlockedIntervals_SkipsMissingTimes(t *testing.T) {
	day := &PrayerDay{
		Date:  time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta),
		Dhuhr: "12:00",
		Asr:   "15:15",
	}

	intervals := day.BlockedIntervals(10*time.Minute, jakarta)

	assert.Len(t, intervals, 2)
}

func TestPrayerDay_Times_Order(t *testing.T) {
	day := &PrayerDay{
		Fajr:    "04:45",
		Maghrib: "18:10",
	}

	times := day.Times()

	require.Len(t, times, 2)
	assert.Equal(t, "04:45", times[0].String())
	assert.Equal(t, "18:10", times[1].String())
}
