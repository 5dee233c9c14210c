package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/domain"
	getAvailableSlots "github.com/bekamcare/BKM-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTherapistID = "некорректный therapist_id"
	msgDateInPast         = "дата уже прошла"
	msgDateTooFar         = "дата за пределами горизонта записи"
	msgTherapistNotFound  = "терапевт не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD[&therapist_id=N]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	therapistID, err := parseOptionalTherapistID(r)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid therapist_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:        date,
		TherapistID: therapistID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)
		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTherapistID)
		case errors.Is(err, getAvailableSlots.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgTherapistNotFound)
		default:
			h.logger.Error("GET /slots - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleDates GET /api/v1/slots/dates[?therapist_id=N]
func (h *Handler) HandleDates(w http.ResponseWriter, r *http.Request) {
	therapistID, err := parseOptionalTherapistID(r)
	if err != nil {
		h.logger.Warn("GET /slots/dates - Invalid therapist_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	result, err := h.useCase.ExecuteDates(r.Context(), &getAvailableSlots.DatesRequest{
		TherapistID: therapistID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTherapistID)
		case errors.Is(err, getAvailableSlots.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgTherapistNotFound)
		default:
			h.logger.Error("GET /slots/dates - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseDatesResponse(result))
}

func parseOptionalTherapistID(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("therapist_id")
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
