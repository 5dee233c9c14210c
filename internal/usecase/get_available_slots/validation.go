package get_available_slots

import (
	"fmt"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TherapistID != nil && *req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата внутри горизонта записи
func validateDate(date, now time.Time, maxDaysAhead int) error {
	if domain.DateInPast(date, now) {
		return ErrInvalidDate
	}

	maxDate := domain.DateOf(now).AddDate(0, 0, maxDaysAhead)
	if domain.DateOf(date).After(maxDate) {
		return fmt.Errorf("%w: can only browse %d days ahead", ErrDateTooFarInFuture, maxDaysAhead)
	}

	return nil
}
