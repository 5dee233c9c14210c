package manage_therapists

import (
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// CreateTherapistRequest HTTP request model
type CreateTherapistRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// UpdateTherapistRequest HTTP request model
type UpdateTherapistRequest struct {
	Name   *string `json:"name,omitempty"`
	Gender *string `json:"gender,omitempty"`
}

// ToggleRequest HTTP request model
type ToggleRequest struct {
	Active bool `json:"active"`
}

// ScheduleInactiveRequest HTTP request model
type ScheduleInactiveRequest struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`   // RFC3339
}

// TherapistResponse HTTP response model
type TherapistResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Active        bool    `json:"active"`
	InactiveStart *string `json:"inactiveStart,omitempty"`
	InactiveEnd   *string `json:"inactiveEnd,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// FromDomainTherapist конвертирует domain модель в HTTP response
func FromDomainTherapist(t *domain.Therapist) *TherapistResponse {
	resp := &TherapistResponse{
		ID:        t.ID,
		Name:      t.Name,
		Gender:    t.Gender,
		Active:    t.Active,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}

	if t.InactiveStart != nil {
		s := t.InactiveStart.Format(time.RFC3339)
		resp.InactiveStart = &s
	}
	if t.InactiveEnd != nil {
		s := t.InactiveEnd.Format(time.RFC3339)
		resp.InactiveEnd = &s
	}

	return resp
}
