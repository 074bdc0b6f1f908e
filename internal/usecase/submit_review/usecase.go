package submit_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SalonClient/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
)

// UseCase use case отправки отзыва по завершенному визиту
type UseCase struct {
	repo         DraftRepository
	api          ReviewAPIClient
	journal      Journal
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo DraftRepository,
	api ReviewAPIClient,
	journal Journal,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		api:          api,
		journal:      journal,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отправляет каждую выставленную оценку отдельной записью.
//
// Записи уходят последовательно в фиксированном порядке Store, Employee, StoreService.
// При ошибке записи k записи 1..k-1 остаются сохраненными, k+1..n не отправляются,
// черновик сохраняется для повторной попытки. Повторная попытка начинает с первой
// записи; API может получить дубликат, ключ идемпотентности у него тот же.
//
// Записи выполняются в контексте без отмены: закрытие окна или разрыв соединения
// не прерывает уже начатую отправку. Таймауты задает HTTP клиент API.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReview: draft=%s, subject=%s", req.DraftID, req.Access.Subject)

	// 1. Загружаем черновик и проверяем владельца
	draft, err := uc.loadDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	writeCtx := context.WithoutCancel(ctx)

	// 2. Запрещаем параллельную отправку и правку того же черновика
	lockToken, acquired, err := uc.repo.LockReviewDraft(writeCtx, draft.ID)
	if err != nil {
		uc.logger.Error("SubmitReview: failed to acquire submit lock for draft=%s: %v", draft.ID, err)
		return nil, fmt.Errorf("%w: failed to acquire submit lock: %v", ErrInternal, err)
	}
	if !acquired {
		uc.logger.Warn("SubmitReview: draft=%s is already being submitted", draft.ID)
		return nil, ErrSubmitInProgress
	}
	defer func(draftID string) {
		if err := uc.repo.UnlockReviewDraft(writeCtx, draftID, lockToken); err != nil {
			uc.logger.Error("SubmitReview: failed to release submit lock for draft=%s: %v", draftID, err)
		}
	}(draft.ID)

	// Черновик мог быть отправлен или изменен, пока блокировка была у другого запроса
	draft, err = uc.loadDraft(writeCtx, req)
	if err != nil {
		return nil, err
	}

	// 3. Валидация до любых сетевых вызовов
	records, err := prepareRecords(draft)
	if err != nil {
		uc.logger.Warn("SubmitReview: validation failed for draft=%s: %v", req.DraftID, err)
		return nil, err
	}

	// 4. Последовательная запись
	submitted := make([]domain.TargetType, 0, len(records))
	for i := range records {
		record := &records[i]

		if err := uc.write(writeCtx, req.Access, draft.ID, record); err != nil {
			uc.metrics.ObserveReviewSubmission(false)
			uc.logger.Error("SubmitReview: draft=%s stopped at %d/%d (%s), persisted=%v: %v",
				draft.ID, i+1, len(records), record.TargetType, submitted, err)

			return nil, &WriteFailure{
				Target:        record.TargetType,
				Persisted:     submitted,
				ServerMessage: salonapi.ServerMessage(err),
				Err:           err,
			}
		}

		submitted = append(submitted, record.TargetType)
	}

	uc.metrics.ObserveReviewSubmission(true)

	// 5. Отзыв отправлен, окно закрывается
	if err := uc.repo.DeleteReviewDraft(writeCtx, draft.ID); err != nil {
		uc.logger.Warn("SubmitReview: failed to drop submitted draft=%s: %v", draft.ID, err)
	}

	uc.logger.Info("SubmitReview: draft=%s submitted %d record(s) for appointment=%d: %v",
		draft.ID, len(submitted), draft.Appointment.ID, submitted)

	return &Response{
		DraftID:    draft.ID,
		Submitted:  submitted,
		Navigation: domain.NavigationClose,
	}, nil
}

func (uc *UseCase) loadDraft(ctx context.Context, req *Request) (*domain.ReviewDraft, error) {
	draft, err := uc.repo.GetReviewDraft(ctx, req.DraftID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrDraftNotFound) {
			uc.logger.Warn("SubmitReview: draft=%s not found", req.DraftID)
			return nil, ErrDraftNotFound
		}
		uc.logger.Error("SubmitReview: failed to load draft=%s: %v", req.DraftID, err)
		return nil, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}

	if !req.Access.Owns(draft.OwnerID) {
		uc.logger.Warn("SubmitReview: access denied for subject=%s to draft=%s", req.Access.Subject, req.DraftID)
		return nil, ErrAccessDenied
	}

	return draft, nil
}

// write отправляет одну запись и фиксирует попытку в журнале
func (uc *UseCase) write(ctx context.Context, access *domain.AccessSession, draftID string, record *domain.ReviewRecord) error {
	key := record.IdempotencyKey()

	err := uc.api.CreateReview(ctx, access.Token, &salonapi.CreateReviewRequest{
		UserID:        record.ReviewerUserID,
		AppointmentID: record.AppointmentID,
		TargetID:      record.TargetID,
		TargetType:    string(record.TargetType),
		Rating:        record.Rating,
		Comment:       record.Comment,
	}, key)

	uc.metrics.ObserveReviewWrite(string(record.TargetType), err == nil)

	attempt := &domain.SubmissionAttempt{
		DraftID:        draftID,
		AppointmentID:  record.AppointmentID,
		ReviewerUserID: record.ReviewerUserID,
		TargetType:     record.TargetType,
		TargetID:       record.TargetID,
		Rating:         record.Rating,
		IdempotencyKey: key,
		Succeeded:      err == nil,
		AttemptedAt:    uc.timeProvider.Now(),
	}
	if err != nil {
		attempt.Message = err.Error()
	}

	// Журнал не влияет на результат отправки
	if jErr := uc.journal.Append(ctx, attempt); jErr != nil {
		uc.logger.Error("SubmitReview: failed to journal attempt draft=%s target=%s: %v",
			draftID, record.TargetType, jErr)
	}

	return err
}
