package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.PatientName)
	if len(name) < domain.MinPatientNameLength || len(name) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName must be %d-%d characters",
			ErrInvalidInput, domain.MinPatientNameLength, domain.MaxPatientNameLength)
	}

	if req.PatientGender != "male" && req.PatientGender != "female" {
		return fmt.Errorf("%w: patientGender must be male or female", ErrInvalidInput)
	}

	if len(req.PatientAddress) > domain.MaxAddressLength {
		return fmt.Errorf("%w: patientAddress too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет дату относительно горизонта записи
func validateDate(date, now time.Time, maxDaysAhead int) error {
	if domain.DateInPast(date, now) {
		return ErrInvalidDate
	}

	maxDate := domain.DateOf(now).AddDate(0, 0, maxDaysAhead)
	if domain.DateOf(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxDaysAhead)
	}

	return nil
}

// validateOnSlotGrid проверяет, что начало попадает в сетку слотов дня
// Сетка учитывает рабочие часы, перерыв и буфер для сегодняшних записей
func validateOnSlotGrid(startAt, date, now time.Time, cfg domain.SlotConfig) error {
	for _, slot := range domain.GenerateSlots(date, cfg, now) {
		if slot.StartAt.Equal(startAt) {
			return nil
		}
	}
	return ErrInvalidTimeSlot
}
