package get_available_slots

import (
	"github.com/bekamcare/BKM-BookingService/internal/domain"
	getAvailableSlots "github.com/bekamcare/BKM-BookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// DatesResponse HTTP response model
type DatesResponse struct {
	Dates []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &SlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}

// FromUseCaseDatesResponse конвертирует ответ use case в HTTP response
func FromUseCaseDatesResponse(resp *getAvailableSlots.DatesResponse) *DatesResponse {
	dates := make([]string, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	return &DatesResponse{Dates: dates}
}
