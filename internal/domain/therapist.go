package domain

import "time"

// Therapist represents a bookable therapist
type Therapist struct {
	ID     int64
	Name   string
	Gender string
	Active bool

	// Запланированное окно неактивности [InactiveStart, InactiveEnd)
	// Оба указателя либо заданы вместе, либо оба nil
	InactiveStart *time.Time
	InactiveEnd   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasInactiveWindow returns true if an inactivity window is scheduled
func (t *Therapist) HasInactiveWindow() bool {
	return t.InactiveStart != nil && t.InactiveEnd != nil
}

// WindowOverlaps reports whether [start, end) overlaps the inactivity window
func (t *Therapist) WindowOverlaps(start, end time.Time) bool {
	if !t.HasInactiveWindow() {
		return false
	}
	return Overlaps(start, end, *t.InactiveStart, *t.InactiveEnd)
}

// DueForDeactivation сообщает, что окно неактивности уже началось
func (t *Therapist) DueForDeactivation(now time.Time) bool {
	return t.Active && t.HasInactiveWindow() && !t.InactiveStart.After(now)
}

// DueForReactivation сообщает, что окно неактивности уже закончилось
func (t *Therapist) DueForReactivation(now time.Time) bool {
	return !t.Active && t.InactiveEnd != nil && !t.InactiveEnd.After(now)
}

// TherapistUpdate частичное обновление данных терапевта
type TherapistUpdate struct {
	Name   *string
	Gender *string
}
