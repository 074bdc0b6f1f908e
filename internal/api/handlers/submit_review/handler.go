package submit_review

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonClient/internal/api/handlers"
	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	submitReview "github.com/m04kA/SMC-SalonClient/internal/usecase/submit_review"
)

const (
	msgSubmitted          = "спасибо за отзыв"
	msgMissingID          = "не указан идентификатор черновика"
	msgDraftNotFound      = "черновик отзыва не найден или истек"
	msgNoRatings          = "поставьте хотя бы одну оценку"
	msgInvalidRatings     = "оценка должна быть от 0 до 5"
	msgIdentityUnresolved = "не удалось определить автора отзыва"
	msgSubmitInProgress   = "отзыв уже отправляется"
	msgWriteFailed        = "не удалось отправить отзыв, попробуйте еще раз"
)

type Handler struct {
	useCase SubmitReviewUseCase
	logger  Logger
}

func NewHandler(useCase SubmitReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/review-drafts/{draftId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	access, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	id := mux.Vars(r)["draftId"]
	if id == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitReview.Request{DraftID: id, Access: access})
	if err != nil {
		var failure *submitReview.WriteFailure

		switch {
		case errors.As(err, &failure):
			message := failure.ServerMessage
			if message == "" {
				message = msgWriteFailed
			}
			h.logger.Warn("POST /review-drafts/{id}/submit - Write failed: id=%s, target=%s, persisted=%v",
				id, failure.Target, failure.Persisted)
			handlers.RespondJSON(w, http.StatusBadGateway, FromWriteFailure(failure, message))

		case errors.Is(err, submitReview.ErrNoRatings):
			h.logger.Warn("POST /review-drafts/{id}/submit - No ratings: id=%s", id)
			handlers.RespondBadRequest(w, msgNoRatings)

		case errors.Is(err, submitReview.ErrInvalidRatings):
			h.logger.Warn("POST /review-drafts/{id}/submit - Invalid ratings: id=%s", id)
			handlers.RespondBadRequest(w, msgInvalidRatings)

		case errors.Is(err, submitReview.ErrIdentityUnresolved):
			h.logger.Error("POST /review-drafts/{id}/submit - Identity unresolved: id=%s", id)
			handlers.RespondErrorWithNavigation(w, http.StatusConflict, msgIdentityUnresolved, domain.NavigationClose)

		case errors.Is(err, submitReview.ErrSubmitInProgress):
			h.logger.Warn("POST /review-drafts/{id}/submit - Already in progress: id=%s", id)
			handlers.RespondConflict(w, msgSubmitInProgress)

		case errors.Is(err, submitReview.ErrDraftNotFound):
			h.logger.Warn("POST /review-drafts/{id}/submit - Draft not found: id=%s", id)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, submitReview.ErrAccessDenied):
			h.logger.Warn("POST /review-drafts/{id}/submit - Access denied: id=%s", id)
			handlers.RespondForbidden(w)

		default:
			h.logger.Error("POST /review-drafts/{id}/submit - Failed to submit review: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /review-drafts/{id}/submit - Review submitted: id=%s, targets=%v", id, result.Submitted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, msgSubmitted))
}
