package get_booking

import (
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	TherapistID     int64  `json:"therapistId"`
	TherapistName   string `json:"therapistName,omitempty"`
	StartAt         string `json:"startAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PatientName     string `json:"patientName"`
	PatientGender   string `json:"patientGender"`
	PatientAddress  string `json:"patientAddress,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// FromDomainBooking конвертирует domain модель в HTTP response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		TherapistID:     b.TherapistID,
		TherapistName:   b.TherapistName,
		StartAt:         b.StartAt.Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PatientName:     b.PatientName,
		PatientGender:   b.PatientGender,
		PatientAddress:  b.PatientAddress,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}
