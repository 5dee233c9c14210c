package create_booking

import (
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	createBooking "github.com/bekamcare/BKM-BookingService/internal/usecase/create_booking"
	"github.com/bekamcare/BKM-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TherapistID    int64  `json:"therapistId"`
	Date           string `json:"date"`      // "2026-09-15"
	StartTime      string `json:"startTime"` // "10:20"
	PatientName    string `json:"patientName"`
	PatientGender  string `json:"patientGender"`
	PatientAddress string `json:"patientAddress"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	TherapistID     int64   `json:"therapistId"`
	TherapistName   string  `json:"therapistName,omitempty"`
	StartAt         string  `json:"startAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PatientName     string  `json:"patientName"`
	PatientGender   string  `json:"patientGender"`
	PatientAddress  string  `json:"patientAddress,omitempty"`
	ReminderJobID   *string `json:"reminderJobId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:         userID,
		TherapistID:    r.TherapistID,
		Date:           date,
		StartTime:      startTime,
		PatientName:    r.PatientName,
		PatientGender:  r.PatientGender,
		PatientAddress: r.PatientAddress,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		TherapistID:     resp.TherapistID,
		TherapistName:   resp.TherapistName,
		StartAt:         resp.StartAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PatientName:     resp.PatientName,
		PatientGender:   resp.PatientGender,
		PatientAddress:  resp.PatientAddress,
		ReminderJobID:   resp.ReminderJobID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
