package manage_therapists

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/domain"
	therapistsService "github.com/bekamcare/BKM-BookingService/internal/service/therapists"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidInput       = "некорректные данные терапевта"
	msgInvalidWindow      = "некорректное окно неактивности"
	msgTherapistNotFound  = "терапевт не найден"
	msgHasActiveBookings  = "у терапевта есть подтвержденные записи"
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

// HandleCreate POST /api/v1/therapists
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTherapistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	therapist, err := h.service.Create(r.Context(), req.Name, req.Gender)
	if err != nil {
		if errors.Is(err, therapistsService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /therapists - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /therapists - Created therapist id=%d", therapist.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainTherapist(therapist))
}

// HandleUpdate PATCH /api/v1/therapists/{therapistId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}

	var req UpdateTherapistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	therapist, err := h.service.Update(r.Context(), id, domain.TherapistUpdate{
		Name:   req.Name,
		Gender: req.Gender,
	})
	if err != nil {
		h.respondServiceError(w, "PATCH /therapists/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainTherapist(therapist))
}

// HandleToggle PATCH /api/v1/therapists/{therapistId}/active
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}

	var req ToggleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetActive(r.Context(), id, req.Active); err != nil {
		h.respondServiceError(w, "PATCH /therapists/{id}/active", id, err)
		return
	}

	h.logger.Info("PATCH /therapists/{id}/active - therapist_id=%d active=%t", id, req.Active)
	handlers.RespondNoContent(w)
}

// HandleSchedule PUT /api/v1/therapists/{therapistId}/inactive-window
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}

	var req ScheduleInactiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, errStart := time.Parse(time.RFC3339, req.Start)
	end, errEnd := time.Parse(time.RFC3339, req.End)
	if errStart != nil || errEnd != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	if err := h.service.ScheduleInactive(r.Context(), id, start, end); err != nil {
		if errors.Is(err, therapistsService.ErrInvalidWindow) {
			handlers.RespondBadRequest(w, msgInvalidWindow)
			return
		}
		h.respondServiceError(w, "PUT /therapists/{id}/inactive-window", id, err)
		return
	}

	h.logger.Info("PUT /therapists/{id}/inactive-window - therapist_id=%d window set", id)
	handlers.RespondNoContent(w)
}

// HandleCancelSchedule DELETE /api/v1/therapists/{therapistId}/inactive-window
func (h *Handler) HandleCancelSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelInactiveWindow(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /therapists/{id}/inactive-window", id, err)
		return
	}

	h.logger.Info("DELETE /therapists/{id}/inactive-window - therapist_id=%d window cleared", id)
	handlers.RespondNoContent(w)
}

// HandleDelete DELETE /api/v1/therapists/{therapistId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, therapistsService.ErrHasActiveBookings) {
			handlers.RespondError(w, http.StatusConflict, msgHasActiveBookings)
			return
		}
		h.respondServiceError(w, "DELETE /therapists/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /therapists/{id} - therapist_id=%d deleted", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, id int64, err error) {
	switch {
	case errors.Is(err, therapistsService.ErrTherapistNotFound):
		handlers.RespondNotFound(w, msgTherapistNotFound)
	case errors.Is(err, therapistsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Failed: therapist_id=%d, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}

func therapistID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["therapistId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return 0, false
	}
	return id, true
}
