package review_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonClient/internal/api/handlers"
	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/reviews"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные отзыва"
	msgDraftNotFound      = "черновик отзыва не найден или истек"
	msgSubmitInProgress   = "отзыв отправляется, изменить его сейчас нельзя"
	msgMissingID          = "не указан идентификатор черновика"
	msgProfileUnavailable = "не удалось загрузить профиль, попробуйте позже"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Open POST /api/v1/review-drafts
// Если профиль автора не получен, окно отзыва закрывается (navigation=close)
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	const op = "POST /review-drafts"

	access, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req OpenDraftRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Open(r.Context(), access, req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, reviews.ErrIdentityUnresolved) {
			h.logger.Warn("%s - Reviewer identity unresolved: appointment_id=%d, error=%v", op, req.AppointmentID, err)
			handlers.RespondErrorWithNavigation(w, http.StatusBadGateway, msgProfileUnavailable, domain.NavigationClose)
			return
		}
		h.respondError(w, op, "", err)
		return
	}

	h.logger.Info("%s - Draft opened: id=%s, appointment_id=%d", op, result.Draft.ID, req.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/review-drafts/{draftId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	access, id, ok := h.draftParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.Get(r.Context(), access, id)
	if err != nil {
		h.respondError(w, "GET /review-drafts/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/review-drafts/{draftId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /review-drafts/{id}"

	access, id, ok := h.draftParams(w, r)
	if !ok {
		return
	}

	var req UpdateDraftRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: id=%s, error=%v", op, id, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.service.Update(r.Context(), access, id, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, op, id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Close DELETE /api/v1/review-drafts/{draftId}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	access, id, ok := h.draftParams(w, r)
	if !ok {
		return
	}

	result, err := h.service.Close(r.Context(), access, id)
	if err != nil {
		h.respondError(w, "DELETE /review-drafts/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) draftParams(w http.ResponseWriter, r *http.Request) (*domain.AccessSession, string, bool) {
	access, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return nil, "", false
	}

	id := mux.Vars(r)["draftId"]
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return nil, "", false
	}

	return access, id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, reviews.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: id=%s, error=%v", op, id, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, reviews.ErrDraftNotFound):
		h.logger.Warn("%s - Draft not found: id=%s", op, id)
		handlers.RespondNotFound(w, msgDraftNotFound)

	case errors.Is(err, reviews.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: id=%s", op, id)
		handlers.RespondForbidden(w)

	case errors.Is(err, reviews.ErrSubmitInProgress):
		h.logger.Warn("%s - Draft is being submitted: id=%s", op, id)
		handlers.RespondConflict(w, msgSubmitInProgress)

	default:
		h.logger.Error("%s - Internal error: id=%s, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}
