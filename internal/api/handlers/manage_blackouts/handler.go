package manage_blackouts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bekamcare/BKM-BookingService/internal/api/handlers"
	blackoutService "github.com/bekamcare/BKM-BookingService/internal/service/blackouts"
)

const (
	msgInvalidWeekday = "некорректный день недели"
	msgInvalidDate    = "некорректная дата"
)

type BlackoutRulesResponse struct {
	Weekdays []int    `json:"weekdays"`
	Dates    []string `json:"dates"`
}

type Handler struct {
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/blackouts
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.GetRules(r.Context())
	if err != nil {
		h.logger.Error("GET /blackouts - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := BlackoutRulesResponse{
		Weekdays: make([]int, 0, len(rules.Weekdays)),
		Dates:    make([]string, 0, len(rules.Dates)),
	}
	for _, wd := range rules.Weekdays {
		resp.Weekdays = append(resp.Weekdays, int(wd))
	}
	for _, d := range rules.Dates {
		resp.Dates = append(resp.Dates, d.Format("2006-01-02"))
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleAddWeekday PUT /api/v1/blackouts/weekdays/{weekday}
func (h *Handler) HandleAddWeekday(w http.ResponseWriter, r *http.Request) {
	wd, ok := weekdayVar(w, r)
	if !ok {
		return
	}

	if err := h.service.AddWeekday(r.Context(), wd); err != nil {
		h.respondServiceError(w, "PUT /blackouts/weekdays/{weekday}", err)
		return
	}

	h.logger.Info("PUT /blackouts/weekdays/{weekday} - Added: weekday=%d", wd)
	handlers.RespondNoContent(w)
}

// HandleRemoveWeekday DELETE /api/v1/blackouts/weekdays/{weekday}
func (h *Handler) HandleRemoveWeekday(w http.ResponseWriter, r *http.Request) {
	wd, ok := weekdayVar(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveWeekday(r.Context(), wd); err != nil {
		h.respondServiceError(w, "DELETE /blackouts/weekdays/{weekday}", err)
		return
	}

	h.logger.Info("DELETE /blackouts/weekdays/{weekday} - Removed: weekday=%d", wd)
	handlers.RespondNoContent(w)
}

// HandleAddDate PUT /api/v1/blackouts/dates/{date}
func (h *Handler) HandleAddDate(w http.ResponseWriter, r *http.Request) {
	date, ok := dateVar(w, r)
	if !ok {
		return
	}

	if err := h.service.AddDate(r.Context(), date); err != nil {
		h.respondServiceError(w, "PUT /blackouts/dates/{date}", err)
		return
	}

	h.logger.Info("PUT /blackouts/dates/{date} - Added: date=%s", date.Format("2006-01-02"))
	handlers.RespondNoContent(w)
}

// HandleRemoveDate DELETE /api/v1/blackouts/dates/{date}
func (h *Handler) HandleRemoveDate(w http.ResponseWriter, r *http.Request) {
	date, ok := dateVar(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveDate(r.Context(), date); err != nil {
		h.respondServiceError(w, "DELETE /blackouts/dates/{date}", err)
		return
	}

	h.logger.Info("DELETE /blackouts/dates/{date} - Removed: date=%s", date.Format("2006-01-02"))
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, blackoutService.ErrInvalidWeekday):
		handlers.RespondBadRequest(w, msgInvalidWeekday)
	case errors.Is(err, blackoutService.ErrInvalidDate):
		handlers.RespondBadRequest(w, msgInvalidDate)
	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}

func weekdayVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	wd, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil || wd < 0 || wd > 6 {
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return 0, false
	}
	return wd, true
}

func dateVar(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return time.Time{}, false
	}
	return date, true
}
