package join_waitlist

import (
	"errors"
	"net/http"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/api/middleware"
	waitlistService "github.com/bekamcare/BKM-BookingService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки"
	msgUnauthorized       = "пользователь не аутентифицирован"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := req.ToDomainEntry(userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	created, err := h.service.Join(r.Context(), entry)
	if err != nil {
		if errors.Is(err, waitlistService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /waitlist - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /waitlist - Joined: entry_id=%d, user_id=%d", created.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainEntry(created))
}
