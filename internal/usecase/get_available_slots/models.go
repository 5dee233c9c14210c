package get_available_slots

import (
	"time"

	"github.com/bekamcare/BKM-BookingService/pkg/types"
)

// Request модель запроса доступных слотов на дату
type Request struct {
	Date        time.Time // Дата (без времени)
	TherapistID *int64    // Конкретный терапевт (опционально)
}

// Response модель ответа со свободными слотами
type Response struct {
	Date  time.Time
	Slots []types.TimeString
}

// DatesRequest модель запроса дат с доступными слотами
type DatesRequest struct {
	TherapistID *int64 // Конкретный терапевт (опционально)
}

// DatesResponse модель ответа с датами горизонта записи
type DatesResponse struct {
	Dates []time.Time
}
