package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SalonClient/internal/infra/storage/session"
)

// Service жизненный цикл окна отзыва: открытие, редактирование, закрытие.
// Отправка реализована в usecase submit_review.
type Service struct {
	repo         DraftRepository
	profiles     ProfileClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo DraftRepository, profiles ProfileClient, logger Logger) *Service {
	return &Service{
		repo:         repo,
		profiles:     profiles,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Open открывает окно отзыва для завершенного визита.
// Делает ровно один запрос профиля. Если ID автора получить не удалось,
// черновик не создается (fail closed) и окно должно закрыться.
func (s *Service) Open(ctx context.Context, access *domain.AccessSession, req *OpenDraftRequest) (*DraftResponse, error) {
	a := req.Appointment
	s.logger.Info("Open: appointment=%d, store=%d, subject=%s", a.ID, a.StoreID, access.Subject)

	if err := validateAppointment(&a); err != nil {
		s.logger.Warn("Open: validation failed: %v", err)
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, access.Token)
	if err != nil {
		s.logger.Error("Open: profile fetch failed for subject=%s, appointment=%d: %v", access.Subject, a.ID, err)
		return nil, fmt.Errorf("%w: profile fetch failed: %v", ErrIdentityUnresolved, err)
	}
	if profile == nil || profile.UserID == nil || *profile.UserID <= 0 {
		got := "missing"
		if profile != nil && profile.UserID != nil {
			got = fmt.Sprintf("%d", *profile.UserID)
		}
		s.logger.Error("Open: profile for subject=%s has no usable userId (userId=%s), appointment=%d",
			access.Subject, got, a.ID)
		return nil, fmt.Errorf("%w: profile has no usable userId", ErrIdentityUnresolved)
	}

	now := s.timeProvider.Now()
	draft := &domain.ReviewDraft{
		ID:             uuid.NewString(),
		OwnerID:        access.Subject,
		Appointment:    a,
		ReviewerUserID: *profile.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.SaveReviewDraft(ctx, draft); err != nil {
		s.logger.Error("Open: failed to save draft for appointment=%d: %v", a.ID, err)
		return nil, fmt.Errorf("%w: Open - save draft: %v", ErrInternal, err)
	}

	s.logger.Info("Open: draft id=%s opened for appointment=%d, reviewer=%d", draft.ID, a.ID, draft.ReviewerUserID)
	return &DraftResponse{Draft: FromDomainDraft(draft)}, nil
}

// Get возвращает черновик
func (s *Service) Get(ctx context.Context, access *domain.AccessSession, id string) (*DraftResponse, error) {
	draft, err := s.load(ctx, access, id)
	if err != nil {
		return nil, err
	}
	return &DraftResponse{Draft: FromDomainDraft(draft)}, nil
}

// Update заменяет оценки и комментарий
func (s *Service) Update(ctx context.Context, access *domain.AccessSession, id string, req *UpdateDraftRequest) (*DraftResponse, error) {
	ratings := domain.Ratings{
		Store:   req.StoreRating,
		Stylist: req.StylistRating,
		Service: req.ServiceRating,
	}
	if !ratings.InRange() {
		s.logger.Warn("Update: draft id=%s ratings out of range: %+v", id, ratings)
		return nil, fmt.Errorf("%w: ratings must be within %d..%d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	comment, err := normalizeComment(req.Comment)
	if err != nil {
		s.logger.Warn("Update: draft id=%s: %v", id, err)
		return nil, err
	}

	unlock, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Под блокировкой: отправленный и удаленный черновик не пересоздается
	draft, err := s.load(ctx, access, id)
	if err != nil {
		return nil, err
	}

	draft.Ratings = ratings
	draft.Comment = comment
	draft.UpdatedAt = s.timeProvider.Now()

	if err := s.repo.SaveReviewDraft(ctx, draft); err != nil {
		s.logger.Error("Update: failed to save draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - save draft: %v", ErrInternal, err)
	}

	s.logger.Info("Update: draft id=%s ratings=%+v", id, ratings)
	return &DraftResponse{Draft: FromDomainDraft(draft)}, nil
}

// Close закрывает окно отзыва и удаляет черновик.
// Уже отправленные записи не отменяются.
func (s *Service) Close(ctx context.Context, access *domain.AccessSession, id string) (*DraftResponse, error) {
	unlock, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	_, err = s.load(ctx, access, id)
	switch {
	case errors.Is(err, ErrDraftNotFound):
		return &DraftResponse{Navigation: domain.NavigationClose}, nil
	case err != nil:
		return nil, err
	}

	if err := s.repo.DeleteReviewDraft(ctx, id); err != nil {
		s.logger.Error("Close: failed to delete draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Close - delete draft: %v", ErrInternal, err)
	}

	s.logger.Info("Close: draft id=%s closed", id)
	return &DraftResponse{Navigation: domain.NavigationClose}, nil
}

// lock берет блокировку черновика; занята, пока идет отправка
func (s *Service) lock(ctx context.Context, id string) (func(), error) {
	token, acquired, err := s.repo.LockReviewDraft(ctx, id)
	if err != nil {
		s.logger.Error("failed to lock review draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: lock draft: %v", ErrInternal, err)
	}
	if !acquired {
		s.logger.Warn("review draft id=%s is being submitted", id)
		return nil, ErrSubmitInProgress
	}

	return func() {
		if err := s.repo.UnlockReviewDraft(context.WithoutCancel(ctx), id, token); err != nil {
			s.logger.Error("failed to unlock review draft id=%s: %v", id, err)
		}
	}, nil
}

func (s *Service) load(ctx context.Context, access *domain.AccessSession, id string) (*domain.ReviewDraft, error) {
	draft, err := s.repo.GetReviewDraft(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrDraftNotFound) {
			s.logger.Warn("review draft id=%s not found", id)
			return nil, ErrDraftNotFound
		}
		s.logger.Error("failed to load review draft id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: load draft: %v", ErrInternal, err)
	}

	if !access.Owns(draft.OwnerID) {
		s.logger.Warn("review draft id=%s: access denied for subject=%s", id, access.Subject)
		return nil, ErrAccessDenied
	}

	return draft, nil
}

// validateAppointment проверяет идентификаторы визита
func validateAppointment(a *domain.Appointment) error {
	if a.ID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}
	if a.StoreID <= 0 {
		return fmt.Errorf("%w: store id must be positive", ErrInvalidInput)
	}
	if a.EmployeeID != nil && *a.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee id must be positive", ErrInvalidInput)
	}
	if a.StoreServiceID != nil && *a.StoreServiceID <= 0 {
		return fmt.Errorf("%w: store service id must be positive", ErrInvalidInput)
	}
	return nil
}

// normalizeComment обрезает пробелы; пустой комментарий = нет комментария
func normalizeComment(comment *string) (*string, error) {
	if comment == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment longer than %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	return &trimmed, nil
}
