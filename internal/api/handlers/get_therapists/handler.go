package get_therapists

import (
	"net/http"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type Handler struct {
	service TherapistsService
	logger  Logger
}

func NewHandler(service TherapistsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// TherapistItem HTTP response model
type TherapistItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Active        bool    `json:"active"`
	InactiveStart *string `json:"inactiveStart,omitempty"`
	InactiveEnd   *string `json:"inactiveEnd,omitempty"`
}

// TherapistListResponse HTTP response model
type TherapistListResponse struct {
	Therapists []TherapistItem `json:"therapists"`
	Total      int             `json:"total"`
}

// Handle GET /api/v1/therapists[?all=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	therapists, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /therapists - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]TherapistItem, 0, len(therapists))
	for _, t := range therapists {
		items = append(items, fromDomainTherapist(t))
	}

	handlers.RespondJSON(w, http.StatusOK, TherapistListResponse{
		Therapists: items,
		Total:      len(items),
	})
}

func fromDomainTherapist(t *domain.Therapist) TherapistItem {
	item := TherapistItem{
		ID:     t.ID,
		Name:   t.Name,
		Gender: t.Gender,
		Active: t.Active,
	}

	if t.InactiveStart != nil {
		s := t.InactiveStart.Format(time.RFC3339)
		item.InactiveStart = &s
	}
	if t.InactiveEnd != nil {
		s := t.InactiveEnd.Format(time.RFC3339)
		item.InactiveEnd = &s
	}

	return item
}
