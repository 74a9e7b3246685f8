// Package httptransport is the admin HTTP API. It delegates to the engine
// without embedding countdown logic.
package httptransport

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/infra/storage"
	"github.com/pearlworks/countdown/internal/platform/logger"
	"github.com/pearlworks/countdown/internal/roster"
)

// CountdownService is the engine surface the API needs.
type CountdownService interface {
	Suicide(id uuid.UUID) (countdown.Record, error)
	CancelSuicide(id uuid.UUID) bool
	Status(id uuid.UUID) (countdown.Record, bool)
	Countdowns() []countdown.Record
	StartScheduler() error
	StopScheduler()
	RestartScheduler() error
	SchedulerRunning() bool
}

// HistorySource rebuilds a player's countdown history.
type HistorySource interface {
	RebuildHistory(ctx context.Context, playerID string) (*storage.CountdownHistory, error)
}

// SchedulerStatus is returned by the scheduler endpoints.
type SchedulerStatus struct {
	Running bool `json:"running"`
	Active  int  `json:"active_countdowns"`
}

// Handler serves the admin API.
type Handler struct {
	service CountdownService
	history HistorySource
	logger  *logger.Logger
}

// NewHandler creates the API handler. history may be nil when no durable
// event store is configured.
func NewHandler(service CountdownService, history HistorySource, log *logger.Logger) *Handler {
	return &Handler{service: service, history: history, logger: log}
}

// Register registers the API routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Timeout(10 * time.Second))
	api.Route("/players/{id}", func(r chi.Router) {
		r.Post("/suicide", h.handleSuicide)
		r.Delete("/suicide", h.handleCancel)
		r.Get("/countdown", h.handleStatus)
		r.Get("/history", h.handleHistory)
	})
	api.Get("/countdowns", h.handleList)
	api.Get("/scheduler", h.handleScheduler)
	api.Post("/scheduler/start", h.handleSchedulerStart)
	api.Post("/scheduler/stop", h.handleSchedulerStop)
	api.Post("/scheduler/restart", h.handleSchedulerRestart)

	r.Mount("/api", api)
}

func (h *Handler) handleSuicide(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Suicide(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	if !h.service.CancelSuicide(id) {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "no countdown running")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	rec, running := h.service.Status(id)
	if !running {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "no countdown running")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		writeErrorMessage(w, http.StatusNotImplemented, "not_implemented", "history is not stored")
		return
	}
	history, err := h.history.RebuildHistory(r.Context(), id.String())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Countdowns())
}

func (h *Handler) handleScheduler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status())
}

func (h *Handler) handleSchedulerStart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.StartScheduler(); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.status())
}

func (h *Handler) handleSchedulerStop(w http.ResponseWriter, r *http.Request) {
	h.service.StopScheduler()
	writeJSON(w, http.StatusOK, h.status())
}

func (h *Handler) handleSchedulerRestart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RestartScheduler(); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.status())
}

func (h *Handler) status() SchedulerStatus {
	return SchedulerStatus{
		Running: h.service.SchedulerRunning(),
		Active:  len(h.service.Countdowns()),
	}
}

func playerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", "player id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// writeError translates domain errors to HTTP responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roster.ErrUnknownPlayer):
		writeErrorMessage(w, http.StatusNotFound, "not_found", "player is not online")
	case errors.Is(err, roster.ErrPlayerDead):
		writeErrorMessage(w, http.StatusConflict, "conflict", "player is dead")
	case errors.Is(err, countdown.ErrInvalidSubject), errors.Is(err, countdown.ErrInvalidTimeout):
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, countdown.ErrSchedulingFailed):
		h.logger.Error("Scheduler could not be started", "path", r.URL.Path, "error", err)
		writeErrorMessage(w, http.StatusServiceUnavailable, "unavailable", "scheduler could not be started")
	default:
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, code, description string) {
	body := map[string]string{"error": code}
	if description != "" {
		body["error_description"] = description
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
