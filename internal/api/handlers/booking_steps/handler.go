package booking_steps

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonClient/internal/api/handlers"
	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceID   = "некорректный идентификатор услуги"
	msgSessionNotFound    = "сессия бронирования не найдена или истекла"
	msgMissingID          = "не указан идентификатор сессии"
	msgSessionBusy        = "запись уже подтверждается"
)

// Handler шаги воронки бронирования.
// Отклоненный ввод не ошибка: ответ 200 со status=rejected и причиной.
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

// SubmitPhone POST /api/v1/booking-sessions/{sessionId}/phone
func (h *Handler) SubmitPhone(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-sessions/{id}/phone"

	access, id, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	var req SubmitPhoneRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SubmitPhone(r.Context(), access, id, req.PhoneNumber)
	h.respond(w, op, id, result, err)
}

// ChooseSalon POST /api/v1/booking-sessions/{sessionId}/salon
func (h *Handler) ChooseSalon(w http.ResponseWriter, r *http.Request) {
	access, id, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.ChooseNearestSalon(r.Context(), access, id)
	h.respond(w, "POST /booking-sessions/{id}/salon", id, result, err)
}

// ToggleService POST /api/v1/booking-sessions/{sessionId}/services/{serviceId}/toggle
func (h *Handler) ToggleService(w http.ResponseWriter, r *http.Request) {
	const op = "POST /booking-sessions/{id}/services/{serviceId}/toggle"

	access, id, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("%s - Invalid service id: %q", op, mux.Vars(r)["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.ToggleService(r.Context(), access, id, serviceID)
	h.respond(w, op, id, result, err)
}

// ConfirmServices POST /api/v1/booking-sessions/{sessionId}/services/confirm
func (h *Handler) ConfirmServices(w http.ResponseWriter, r *http.Request) {
	access, id, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.ConfirmServices(r.Context(), access, id)
	h.respond(w, "POST /booking-sessions/{id}/services/confirm", id, result, err)
}

// ChooseDate PUT /api/v1/booking-sessions/{sessionId}/date
func (h *Handler) ChooseDate(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /booking-sessions/{id}/date"

	access, id, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	var req ChooseDateRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		h.logger.Warn("%s - Invalid date %q: %v", op, req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ChooseDate(r.Context(), access, id, date)
	h.respond(w, op, id, result, err)
}

// ChooseTime PUT /api/v1/booking-sessions/{sessionId}/time
// Некорректное время возвращается как отказ шага (reason=invalid_time)
func (h *Handler) ChooseTime(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /booking-sessions/{id}/time"

	access, id, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	var req ChooseTimeRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ChooseTime(r.Context(), access, id, req.Time)
	h.respond(w, op, id, result, err)
}

func (h *Handler) sessionParams(w http.ResponseWriter, r *http.Request) (*domain.AccessSession, string, bool) {
	access, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return nil, "", false
	}

	id := mux.Vars(r)["sessionId"]
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return nil, "", false
	}

	return access, id, true
}

func (h *Handler) respond(w http.ResponseWriter, op, id string, result *bookingflow.Response, err error) {
	if err != nil {
		switch {
		case errors.Is(err, bookingflow.ErrSessionNotFound):
			h.logger.Warn("%s - Session not found: id=%s", op, id)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, bookingflow.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: id=%s", op, id)
			handlers.RespondForbidden(w)

		case errors.Is(err, bookingflow.ErrSessionBusy):
			h.logger.Warn("%s - Session busy: id=%s", op, id)
			handlers.RespondConflict(w, msgSessionBusy)

		default:
			h.logger.Error("%s - Internal error: id=%s, error=%v", op, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
