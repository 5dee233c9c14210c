package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps_HalfOpen(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, jakarta)

	tests := []struct {
		name     string
		s1, e1   time.Time
		s2, e2   time.Time
		expected bool
	}{
		{
			name: "identical intervals",
			s1:   base, e1: base.Add(40 * time.Minute),
			s2: base, e2: base.Add(40 * time.Minute),
			expected: true,
		},
		{
			name: "partial overlap",
			s1:   base, e1: base.Add(40 * time.Minute),
			s2: base.Add(20 * time.Minute), e2: base.Add(60 * time.Minute),
			expected: true,
		},
		{
			name: "touching boundaries do not overlap",
			s1:   base, e1: base.Add(40 * time.Minute),
			s2: base.Add(40 * time.Minute), e2: base.Add(80 * time.Minute),
			expected: false,
		},
		{
			name: "disjoint",
			s1:   base, e1: base.Add(40 * time.Minute),
			s2: base.Add(2 * time.Hour), e2: base.Add(3 * time.Hour),
			expected: false,
		},
		{
			name: "contained",
			s1:   base, e1: base.Add(2 * time.Hour),
			s2: base.Add(30 * time.Minute), e2: base.Add(time.Hour),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.expected, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestBooking_EndAt(t *testing.T) {
	b := &Booking{
		StartAt:         time.Date(2026, 3, 10, 10, 0, 0, 0, jakarta),
		DurationMinutes: 40,
	}

	assert.Equal(t, time.Date(2026, 3, 10, 10, 40, 0, 0, jakarta), b.EndAt())
}

func TestBooking_OverlapsInterval(t *testing.T) {
	b := &Booking{
		StartAt:         time.Date(2026, 3, 10, 10, 0, 0, 0, jakarta),
		DurationMinutes: 40,
	}

	// Смежный сеанс, начинающийся точно в конец, не конфликтует
	assert.False(t, b.OverlapsInterval(b.EndAt(), b.EndAt().Add(40*time.Minute)))
	assert.True(t, b.OverlapsInterval(b.StartAt.Add(20*time.Minute), b.StartAt.Add(60*time.Minute)))
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
}

func TestToBookingStatus(t *testing.T) {
	for _, valid := range []string{"confirmed", "completed", "cancelled"} {
		status, ok := ToBookingStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, BookingStatus(valid), status)
	}

	_, ok := ToBookingStatus("pending")
	assert.False(t, ok)
}
