package booking_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonClient/internal/api/handlers"
	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
)

const (
	msgSessionNotFound = "сессия бронирования не найдена или истекла"
	msgMissingID       = "не указан идентификатор сессии"
)

type Handler struct {
	service BookingFlowService
	logger  Logger
}

func NewHandler(service BookingFlowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start POST /api/v1/booking-sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	access, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.Start(r.Context(), access)
	if err != nil {
		h.logger.Error("POST /booking-sessions - Failed to start session: subject=%s, error=%v", access.Subject, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/booking-sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	access, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	id := mux.Vars(r)["sessionId"]
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.service.Get(r.Context(), access, id)
	if err != nil {
		h.respondError(w, "GET /booking-sessions/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Abandon DELETE /api/v1/booking-sessions/{sessionId}
// Уход с экрана: сессия сбрасывается, клиент уходит на главную
func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	access, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	id := mux.Vars(r)["sessionId"]
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.service.Abandon(r.Context(), access, id)
	if err != nil {
		h.respondError(w, "DELETE /booking-sessions/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /booking-sessions/{id} - Session abandoned: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, bookingflow.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: id=%s", op, id)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, bookingflow.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: id=%s", op, id)
		handlers.RespondForbidden(w)

	default:
		h.logger.Error("%s - Internal error: id=%s, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}
