package manage_waitlist

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	"github.com/bekamcare/BKM-BookingService/internal/domain"
	waitlistService "github.com/bekamcare/BKM-BookingService/internal/service/waitlist"
)

const (
	msgInvalidEntryID = "некорректный ID заявки"
	msgEntryNotFound  = "заявка не найдена"

	defaultLimit = 100
)

type WaitlistEntryItem struct {
	ID            int64   `json:"id"`
	ChatID        int64   `json:"chatId"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Phone         *string `json:"phone,omitempty"`
	RequestedDate *string `json:"requestedDate,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

type WaitlistResponse struct {
	Entries []WaitlistEntryItem `json:"entries"`
}

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

// HandleList GET /api/v1/waitlist
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), defaultLimit)
	offset := parseIntOrDefault(r.URL.Query().Get("offset"), 0)

	entries, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("GET /waitlist - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := WaitlistResponse{Entries: make([]WaitlistEntryItem, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, fromDomainEntry(entry))
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleGet GET /api/v1/waitlist/{entryId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, waitlistService.ErrEntryNotFound) {
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("GET /waitlist/{id} - Failed: entry_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainEntry(entry))
}

// HandleRemove DELETE /api/v1/waitlist/{entryId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, waitlistService.ErrEntryNotFound) {
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("DELETE /waitlist/{id} - Failed: entry_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Removed: entry_id=%d", id)
	handlers.RespondNoContent(w)
}

func fromDomainEntry(entry *domain.WaitlistEntry) WaitlistEntryItem {
	item := WaitlistEntryItem{
		ID:        entry.ID,
		ChatID:    entry.ChatID,
		Name:      entry.Name,
		Gender:    entry.Gender,
		Phone:     entry.Phone,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}

	if entry.RequestedDate != nil {
		date := entry.RequestedDate.Format("2006-01-02")
		item.RequestedDate = &date
	}

	return item
}

func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return 0, false
	}
	return id, true
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
