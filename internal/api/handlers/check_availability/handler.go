package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/domain"
	availabilityService "github.com/bekamcare/BKM-BookingService/internal/service/availability"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidStart       = "некорректный параметр start, ожидается RFC3339"
	msgInvalidDuration    = "некорректный параметр duration"
	msgTherapistNotFound  = "терапевт не найден"
)

type Handler struct {
	service        AvailabilityService
	logger         Logger
	sessionMinutes int
}

func NewHandler(service AvailabilityService, logger Logger, sessionMinutes int) *Handler {
	return &Handler{
		service:        service,
		logger:         logger,
		sessionMinutes: sessionMinutes,
	}
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TherapistID     int64  `json:"therapistId"`
	StartAt         string `json:"startAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// Handle GET /api/v1/therapists/{therapistId}/availability?start=RFC3339[&duration=M]
// Ответ совещательный: единственный источник истины - транзакция записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := strconv.ParseInt(mux.Vars(r)["therapistId"], 10, 64)
	if err != nil || therapistID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	duration := h.sessionMinutes
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < domain.MinSessionMinutes || duration > domain.MaxSessionMinutes {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	free, err := h.service.IsFree(r.Context(), therapistID, start, duration)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgTherapistNotFound)
		case errors.Is(err, availabilityService.ErrTherapistInactive):
			// Неактивный терапевт просто не свободен
			handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
				TherapistID:     therapistID,
				StartAt:         start.Format(time.RFC3339),
				DurationMinutes: duration,
				Available:       false,
			})
		default:
			h.logger.Error("GET /therapists/{id}/availability - Failed: therapist_id=%d, error=%v", therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		TherapistID:     therapistID,
		StartAt:         start.Format(time.RFC3339),
		DurationMinutes: duration,
		Available:       free,
	})
}
