package join_waitlist

import (
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type JoinWaitlistRequest struct {
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Phone         *string `json:"phone,omitempty"`
	RequestedDate *string `json:"requestedDate,omitempty"`
}

type WaitlistEntryResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Phone         *string `json:"phone,omitempty"`
	RequestedDate *string `json:"requestedDate,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func (r *JoinWaitlistRequest) ToDomainEntry(userID int64) (*domain.WaitlistEntry, error) {
	entry := &domain.WaitlistEntry{
		ChatID: userID,
		Name:   r.Name,
		Phone:  r.Phone,
		Gender: r.Gender,
	}

	if r.RequestedDate != nil && *r.RequestedDate != "" {
		date, err := time.Parse("2006-01-02", *r.RequestedDate)
		if err != nil {
			return nil, err
		}
		entry.RequestedDate = &date
	}

	return entry, nil
}

func FromDomainEntry(entry *domain.WaitlistEntry) WaitlistEntryResponse {
	resp := WaitlistEntryResponse{
		ID:        entry.ID,
		Name:      entry.Name,
		Gender:    entry.Gender,
		Phone:     entry.Phone,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}

	if entry.RequestedDate != nil {
		date := entry.RequestedDate.Format("2006-01-02")
		resp.RequestedDate = &date
	}

	return resp
}
