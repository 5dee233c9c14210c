package get_user_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/api/middleware"
	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgAccessDenied  = "доступ запрещен"
	msgUnauthorized  = "требуется аутентификация"

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
	TherapistID     int64  `json:"therapistId"`
	TherapistName   string `json:"therapistName,omitempty"`
	StartAt         string `json:"startAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	PatientName     string `json:"patientName"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []BookingItem `json:"bookings"`
	Total    int           `json:"total"`
}

// Handle GET /api/v1/users/{userId}/bookings[?upcoming=true&limit=N&offset=N]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authUserID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Чужую историю видит только администратор
	if userID != authUserID && !middleware.IsAdminFromContext(r.Context()) {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	upcomingOnly := r.URL.Query().Get("upcoming") == "true"
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), defaultLimit)
	offset := parseIntOrDefault(r.URL.Query().Get("offset"), 0)

	bookings, err := h.service.GetUserBookings(r.Context(), userID, upcomingOnly, limit, offset)
	if err != nil {
		h.logger.Error("GET /users/{id}/bookings - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]BookingItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, fromDomainBooking(b))
	}

	handlers.RespondJSON(w, http.StatusOK, BookingListResponse{
		Bookings: items,
		Total:    len(items),
	})
}

func fromDomainBooking(b *domain.Booking) BookingItem {
	return BookingItem{
		ID:              b.ID,
		TherapistID:     b.TherapistID,
		TherapistName:   b.TherapistName,
		StartAt:         b.StartAt.Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PatientName:     b.PatientName,
	}
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
