package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func defaultSlotConfig() SlotConfig {
	return SlotConfig{
		StartHour:               9,
		EndHour:                 18,
		BreakStartHour:          12,
		BreakEndHour:            13,
		IntervalMinutes:         40,
		MinBookingBufferMinutes: 5,
	}
}

func TestGenerateSlots_FutureDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, jakarta)

	slots := GenerateSlots(date, defaultSlotConfig(), now)

	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2026, 3, 12, 9, 0, 0, 0, jakarta), slots[0].StartAt)
	last := slots[len(slots)-1]
	assert.True(t, last.StartAt.Before(time.Date(2026, 3, 12, 18, 0, 0, 0, jakarta)))

	// Сетка 9:00-18:00 с шагом 40 минут без часов [12, 13)
	for _, s := range slots {
		assert.False(t, s.StartAt.Hour() == 12, "slot %s falls into the break", s.StartAt)
		assert.Equal(t, 0, s.Date.Hour())
	}
}

func TestGenerateSlots_SkipsBreakHours(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, jakarta)

	slots := GenerateSlots(date, defaultSlotConfig(), now)

	// 9:00, 9:40, ..., 11:40 идут подряд; следующий после перерыва - 13:00
	var afterBreak *Slot
	for i := range slots {
		if slots[i].StartAt.Hour() >= 13 {
			afterBreak = &slots[i]
			break
		}
	}
	require.NotNil(t, afterBreak)
	assert.Equal(t, 13, afterBreak.StartAt.Hour())
}

func TestGenerateSlots_PastDateIsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, jakarta)

	slots := GenerateSlots(date, defaultSlotConfig(), now)

	assert.Empty(t, slots)
}

func TestGenerateSlots_TodayAppliesBuffer(t *testing.T) {
	// 10:38 + 5 минут буфера: слоты до 10:43 отрезаются, первый доступный 11:00
	now := time.Date(2026, 3, 10, 10, 38, 0, 0, jakarta)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta)

	slots := GenerateSlots(date, defaultSlotConfig(), now)

	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2026, 3, 10, 11, 0, 0, 0, jakarta), slots[0].StartAt)
}

func TestGenerateSlots_TodayExactCutoffExcluded(t *testing.T) {
	// Момент ровно now + буфер не проходит: требуется строго позже
	now := time.Date(2026, 3, 10, 9, 35, 0, 0, jakarta)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, jakarta)

	slots := GenerateSlots(date, defaultSlotConfig(), now)

	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 20, 0, 0, jakarta), slots[0].StartAt)
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, jakarta)

	first := GenerateSlots(date, defaultSlotConfig(), now)
	second := GenerateSlots(date, defaultSlotConfig(), now)

	assert.Equal(t, first, second)
}
