package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonClient/internal/api/handlers"
	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
)

const (
	msgSessionNotFound     = "сессия бронирования не найдена или истекла"
	msgMissingID           = "не указан идентификатор сессии"
	msgConfirmationFailed  = "не удалось подтвердить запись, попробуйте еще раз"
	msgSessionUnauthorized = "сессия истекла, войдите снова"
	msgConfirmInProgress   = "запись уже подтверждается"
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

// Handle POST /api/v1/booking-sessions/{sessionId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.ConfirmSlot(r.Context(), access, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingflow.ErrSessionNotFound):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Session not found: id=%s", id)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, bookingflow.ErrAccessDenied):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Access denied: id=%s", id)
			handlers.RespondForbidden(w)

		case errors.Is(err, bookingflow.ErrSessionBusy):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Confirmation in progress: id=%s", id)
			handlers.RespondConflict(w, msgConfirmInProgress)

		case errors.Is(err, salonapi.ErrUnauthorized):
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Token rejected by booking API: id=%s", id)
			handlers.RespondErrorWithNavigation(w, http.StatusUnauthorized, msgSessionUnauthorized, domain.NavigationLogin)

		case errors.Is(err, bookingflow.ErrConfirmationFailed):
			// Сессия остается на выборе времени, ошибка показывается пользователю
			message := salonapi.ServerMessage(err)
			if message == "" {
				message = msgConfirmationFailed
			}
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Confirmation failed: id=%s, error=%v", id, err)
			handlers.RespondError(w, http.StatusBadGateway, message)

		default:
			h.logger.Error("POST /booking-sessions/{id}/confirm - Internal error: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Session != nil && result.Session.BookingID != nil {
		h.logger.Info("POST /booking-sessions/{id}/confirm - Booking confirmed: id=%s, booking_id=%d", id, *result.Session.BookingID)
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
