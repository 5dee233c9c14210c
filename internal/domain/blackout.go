package domain

import "time"

// BlackoutRules набор правил выходных дней
// Weekdays - повторяющиеся дни недели, Dates - явные даты
type BlackoutRules struct {
	Weekdays []time.Weekday
	Dates    []time.Time
}

// Contains проверяет, является ли дата выходным днем
func (r BlackoutRules) Contains(date time.Time) bool {
	for _, wd := range r.Weekdays {
		if date.Weekday() == wd {
			return true
		}
	}
	for _, d := range r.Dates {
		if SameDay(d, date) {
			return true
		}
	}
	return false
}
