package domain

import "time"

// Slot кандидат начала сеанса; никогда не персистится
type Slot struct {
	Date    time.Time
	StartAt time.Time
}

// SlotConfig параметры генерации слотов рабочего дня
type SlotConfig struct {
	StartHour               int
	EndHour                 int
	BreakStartHour          int
	BreakEndHour            int
	IntervalMinutes         int
	MinBookingBufferMinutes int
}

// GenerateSlots перечисляет кандидатов начала сеанса для даты
// Шаг IntervalMinutes от StartHour до EndHour (исключительно),
// часы [BreakStartHour, BreakEndHour) пропускаются
// Прошедшая дата дает пустой список; для сегодняшней даты
// остаются только моменты строго позже now + буфер
// Детерминированно при фиксированных входах
func GenerateSlots(date time.Time, cfg SlotConfig, now time.Time) []Slot {
	if DateInPast(date, now) {
		return []Slot{}
	}

	loc := now.Location()
	cursor := time.Date(date.Year(), date.Month(), date.Day(), cfg.StartHour, 0, 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), cfg.EndHour, 0, 0, 0, loc)

	today := SameDay(date, now)
	cutoff := now.Add(time.Duration(cfg.MinBookingBufferMinutes) * time.Minute)

	slots := make([]Slot, 0)
	for cursor.Before(end) {
		inBreak := cursor.Hour() >= cfg.BreakStartHour && cursor.Hour() < cfg.BreakEndHour
		if !inBreak {
			if !today || cursor.After(cutoff) {
				slots = append(slots, Slot{Date: DateOf(cursor), StartAt: cursor})
			}
		}
		cursor = cursor.Add(time.Duration(cfg.IntervalMinutes) * time.Minute)
	}

	return slots
}
