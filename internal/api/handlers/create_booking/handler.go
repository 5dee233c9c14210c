package create_booking

import (
	"errors"
	"net/http"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/api/middleware"
	createBooking "github.com/bekamcare/BKM-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgTherapistNotFound  = "терапевт не найден"
	msgTherapistInactive  = "терапевт сейчас не принимает записи"
	msgInvalidBookingDate = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgDateUnavailable    = "выбранная дата закрыта для записи"
	msgInvalidTimeSlot    = "время не попадает в сетку слотов"
	msgSlotBlocked        = "время закрыто расписанием молитв"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, therapist_id=%d", userID, req.TherapistID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrTherapistNotFound):
			h.logger.Warn("POST /bookings - Therapist not found: therapist_id=%d", req.TherapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, createBooking.ErrTherapistInactive):
			h.logger.Warn("POST /bookings - Therapist inactive: therapist_id=%d", req.TherapistID)
			handlers.RespondError(w, http.StatusConflict, msgTherapistInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrDateUnavailable):
			handlers.RespondError(w, http.StatusConflict, msgDateUnavailable)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrSlotBlocked):
			handlers.RespondError(w, http.StatusConflict, msgSlotBlocked)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, therapist_id=%d",
		result.ID, userID, req.TherapistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
