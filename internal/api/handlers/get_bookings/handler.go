package get_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

const (
	msgInvalidStatus      = "некорректный статус"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTherapistID = "некорректный therapist_id"

	defaultLimit = 50
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// BookingItem HTTP response model
type BookingItem struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	TherapistID     int64  `json:"therapistId"`
	TherapistName   string `json:"therapistName,omitempty"`
	StartAt         string `json:"startAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PatientName     string `json:"patientName"`
	PatientGender   string `json:"patientGender"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []BookingItem `json:"bookings"`
	Total    int           `json:"total"`
}

// Handle GET /api/v1/bookings (административная выборка)
// Поддерживает фильтры therapist_id, status, start_date, end_date и пагинацию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.BookingsFilter{
		Limit:  parseIntOrDefault(query.Get("limit"), defaultLimit),
		Offset: parseIntOrDefault(query.Get("offset"), 0),
	}

	if raw := query.Get("therapist_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidTherapistID)
			return
		}
		filter.TherapistID = &id
	}

	if raw := query.Get("status"); raw != "" {
		status, ok := domain.ToBookingStatus(raw)
		if !ok {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}

	if raw := query.Get("start_date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.StartDate = &date
	}

	if raw := query.Get("end_date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.EndDate = &date
	}

	bookings, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /bookings - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]BookingItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, BookingItem{
			ID:              b.ID,
			UserID:          b.UserID,
			TherapistID:     b.TherapistID,
			TherapistName:   b.TherapistName,
			StartAt:         b.StartAt.Format(time.RFC3339),
			DurationMinutes: b.DurationMinutes,
			Status:          string(b.Status),
			PatientName:     b.PatientName,
			PatientGender:   b.PatientGender,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, BookingListResponse{
		Bookings: items,
		Total:    len(items),
	})
}

func parseIntOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
