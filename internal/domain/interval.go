package domain

import "time"

// Overlaps проверяет пересечение полуоткрытых интервалов [s1, e1) и [s2, e2)
// Граничные случаи (конец одного совпадает с началом другого) пересечением не считаются
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// SameDay проверяет, что два момента относятся к одной календарной дате
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOf обнуляет время, оставляя только дату в локации момента
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateInPast проверяет, что дата раньше сегодняшнего дня
func DateInPast(date, now time.Time) bool {
	return DateOf(date).Before(DateOf(now))
}
