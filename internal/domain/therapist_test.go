package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func windowTherapist(active bool, start, end time.Time) *Therapist {
	return &Therapist{
		ID:            1,
		Name:          "Siti",
		Active:        active,
		InactiveStart: &start,
		InactiveEnd:   &end,
	}
}

func TestTherapist_WindowOverlaps(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, jakarta)
	th := windowTherapist(true, start, end)

	assert.True(t, th.WindowOverlaps(
		time.Date(2026, 3, 12, 10, 0, 0, 0, jakarta),
		time.Date(2026, 3, 12, 10, 40, 0, 0, jakarta),
	))
	// Сеанс, начинающийся ровно в конец окна, допустим
	assert.False(t, th.WindowOverlaps(end, end.Add(40*time.Minute)))

	noWindow := &Therapist{ID: 2, Active: true}
	assert.False(t, noWindow.WindowOverlaps(start, end))
}

func TestTherapist_DueForDeactivation(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, jakarta)

	th := windowTherapist(true, start, end)

	assert.False(t, th.DueForDeactivation(start.Add(-time.Minute)))
	assert.True(t, th.DueForDeactivation(start))
	assert.True(t, th.DueForDeactivation(start.Add(time.Hour)))

	inactive := windowTherapist(false, start, end)
	assert.False(t, inactive.DueForDeactivation(start.Add(time.Hour)))
}

func TestTherapist_DueForReactivation(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, jakarta)

	th := windowTherapist(false, start, end)

	assert.False(t, th.DueForReactivation(end.Add(-time.Minute)))
	assert.True(t, th.DueForReactivation(end))
	assert.True(t, th.DueForReactivation(end.Add(time.Hour)))

	active := windowTherapist(true, start, end)
	assert.False(t, active.DueForReactivation(end.Add(time.Hour)))
}
