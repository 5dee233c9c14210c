package domain

import (
	"time"

	"github.com/bekamcare/BKM-BookingService/pkg/types"
)

// PrayerDay кэшированное расписание намазов на одну дату
// До пяти именованных времен суток; отсутствующие значения пустые
type PrayerDay struct {
	Date    time.Time
	Fajr    types.TimeString
	Dhuhr   types.TimeString
	Asr     types.TimeString
	Maghrib types.TimeString
	Isha    types.TimeString

	CreatedAt time.Time
}

// Times возвращает заданные времена в фиксированном порядке
func (p *PrayerDay) Times() []types.TimeString {
	all := []types.TimeString{p.Fajr, p.Dhuhr, p.Asr, p.Maghrib, p.Isha}
	present := make([]types.TimeString, 0, len(all))
	for _, t := range all {
		if !t.IsZero() {
			present = append(present, t)
		}
	}
	return present
}

// BlockedInterval запрещенный для начала сеанса интервал [Start, End)
type BlockedInterval struct {
	Start time.Time
	End   time.Time
}

// Contains проверяет попадание момента в интервал (полуоткрытый)
func (b BlockedInterval) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// BlockedIntervals строит интервалы [p-Δ, p+Δ) вокруг каждого времени намаза
func (p *PrayerDay) BlockedIntervals(halfWidth time.Duration, loc *time.Location) []BlockedInterval {
	times := p.Times()
	intervals := make([]BlockedInterval, 0, len(times))
	for _, ts := range times {
		at, err := ts.At(p.Date, loc)
		if err != nil {
			continue
		}
		intervals = append(intervals, BlockedInterval{
			Start: at.Add(-halfWidth),
			End:   at.Add(halfWidth),
		})
	}
	return intervals
}
