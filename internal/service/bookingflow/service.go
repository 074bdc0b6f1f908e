package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SalonClient/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
)

// Service контроллер пошагового бронирования (gate → salon → services → timeslot).
// Все переходы кроме confirmSlot выполняются без обращения к внешнему API.
type Service struct {
	repo           SessionRepository
	api            BookingAPIClient
	metrics        Metrics
	nearestSalonID int64
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	repo SessionRepository,
	api BookingAPIClient,
	metrics Metrics,
	nearestSalonID int64,
	logger Logger,
) *Service {
	return &Service{
		repo:           repo,
		api:            api,
		metrics:        metrics,
		nearestSalonID: nearestSalonID,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Start открывает новую сессию на шаге Gate
func (s *Service) Start(ctx context.Context, access *domain.AccessSession) (*Response, error) {
	session := domain.NewBookingSession(uuid.NewString(), access.Subject, s.timeProvider.Now())

	if err := s.repo.SaveBookingSession(ctx, session); err != nil {
		s.logger.Error("Start: failed to save session for subject=%s: %v", access.Subject, err)
		return nil, fmt.Errorf("%w: Start - save session: %v", ErrInternal, err)
	}

	s.logger.Info("Start: booking session id=%s opened for subject=%s", session.ID, access.Subject)
	return &Response{Session: FromDomainSession(session)}, nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, access *domain.AccessSession, id string) (*Response, error) {
	session, err := s.load(ctx, access, id)
	if err != nil {
		return nil, err
	}
	return &Response{Session: FromDomainSession(session)}, nil
}

// SubmitPhone шаг Gate
func (s *Service) SubmitPhone(ctx context.Context, access *domain.AccessSession, id string, phone string) (*Response, error) {
	return s.transition(ctx, access, id, "SubmitPhone", func(session *domain.BookingSession) domain.StepResult {
		return session.SubmitPhone(phone)
	})
}

// ChooseNearestSalon шаг SalonSelect, единственный вариант - ближайший салон
func (s *Service) ChooseNearestSalon(ctx context.Context, access *domain.AccessSession, id string) (*Response, error) {
	return s.transition(ctx, access, id, "ChooseNearestSalon", func(session *domain.BookingSession) domain.StepResult {
		return session.ChooseNearestSalon(s.nearestSalonID)
	})
}

// ToggleService добавляет или убирает услугу
func (s *Service) ToggleService(ctx context.Context, access *domain.AccessSession, id string, serviceID int64) (*Response, error) {
	return s.transition(ctx, access, id, "ToggleService", func(session *domain.BookingSession) domain.StepResult {
		return session.ToggleService(serviceID)
	})
}

// ConfirmServices переводит на выбор времени
func (s *Service) ConfirmServices(ctx context.Context, access *domain.AccessSession, id string) (*Response, error) {
	return s.transition(ctx, access, id, "ConfirmServices", func(session *domain.BookingSession) domain.StepResult {
		return session.ConfirmServices()
	})
}

// ChooseDate выбирает дату (перезаписывает предыдущий выбор)
func (s *Service) ChooseDate(ctx context.Context, access *domain.AccessSession, id string, date time.Time) (*Response, error) {
	return s.transition(ctx, access, id, "ChooseDate", func(session *domain.BookingSession) domain.StepResult {
		return session.ChooseDate(date)
	})
}

// ChooseTime выбирает время (перезаписывает предыдущий выбор)
func (s *Service) ChooseTime(ctx context.Context, access *domain.AccessSession, id string, value string) (*Response, error) {
	return s.transition(ctx, access, id, "ChooseTime", func(session *domain.BookingSession) domain.StepResult {
		return session.ChooseTime(value)
	})
}

// ConfirmSlot передает накопленный выбор во внешний API бронирования.
// Без даты или времени - no-op с причиной отказа, API не вызывается.
// При ошибке API сессия остается на шаге TimeSelect.
// Пока идет подтверждение, повторное подтверждение и переходы получают ErrSessionBusy.
func (s *Service) ConfirmSlot(ctx context.Context, access *domain.AccessSession, id string) (*Response, error) {
	session, unlock, err := s.loadLocked(ctx, access, id, "ConfirmSlot")
	if err != nil {
		return nil, err
	}
	defer unlock()

	if ready := session.CheckSlotReady(); ready.IsRejected() {
		s.logger.Info("ConfirmSlot: session id=%s rejected: step=%s reason=%s", id, ready.Step, ready.Reason)
		return newResponse(session, ready), nil
	}

	if session.SelectedSalonID == nil {
		s.logger.Error("ConfirmSlot: session id=%s reached %s without salon", id, session.Step)
		return nil, fmt.Errorf("%w: ConfirmSlot - salon not selected", ErrInternal)
	}

	req := &salonapi.ConfirmBookingRequest{
		PhoneNumber: session.PhoneNumber,
		SalonID:     *session.SelectedSalonID,
		ServiceIDs:  session.ServiceIDs(),
		Date:        session.SelectedDate.Format(domain.DateFormat),
		Time:        *session.SelectedTime,
	}

	confirmation, err := s.api.ConfirmBooking(ctx, access.Token, req)
	if err != nil {
		s.metrics.ObserveBookingConfirmation(false)
		s.logger.Error("ConfirmSlot: booking API failed for session id=%s, salon=%d, date=%s, time=%s: %v",
			id, req.SalonID, req.Date, req.Time, err)
		return nil, fmt.Errorf("%w: %w", ErrConfirmationFailed, err)
	}
	s.metrics.ObserveBookingConfirmation(true)

	result := session.MarkConfirmed(confirmation.BookingID)

	// Сессия завершена, хост закрывает экран
	if err := s.repo.DeleteBookingSession(ctx, id); err != nil {
		s.logger.Warn("ConfirmSlot: failed to drop confirmed session id=%s: %v", id, err)
	}

	s.logger.Info("ConfirmSlot: session id=%s confirmed as booking id=%d", id, confirmation.BookingID)

	resp := newResponse(session, result)
	resp.Navigation = domain.NavigationClose
	return resp, nil
}

// Abandon уход с экрана бронирования: сессия уничтожается без сохранения.
// Повторный вызов безопасен.
func (s *Service) Abandon(ctx context.Context, access *domain.AccessSession, id string) (*Response, error) {
	_, err := s.load(ctx, access, id)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		s.logger.Info("Abandon: session id=%s already gone", id)
		return &Response{Navigation: domain.NavigationHome}, nil
	case err != nil:
		return nil, err
	}

	if err := s.repo.DeleteBookingSession(ctx, id); err != nil {
		s.logger.Error("Abandon: failed to delete session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Abandon - delete session: %v", ErrInternal, err)
	}

	s.logger.Info("Abandon: session id=%s reset by subject=%s", id, access.Subject)
	return &Response{Navigation: domain.NavigationHome}, nil
}

// transition загружает сессию, применяет переход и сохраняет ее, если ввод принят
func (s *Service) transition(
	ctx context.Context,
	access *domain.AccessSession,
	id string,
	op string,
	apply func(session *domain.BookingSession) domain.StepResult,
) (*Response, error) {
	session, unlock, err := s.loadLocked(ctx, access, id, op)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result := apply(session)
	if result.IsRejected() {
		s.logger.Info("%s: session id=%s rejected: step=%s reason=%s", op, id, result.Step, result.Reason)
		return newResponse(session, result), nil
	}

	if err := s.repo.SaveBookingSession(ctx, session); err != nil {
		s.logger.Error("%s: failed to save session id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - save session: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: session id=%s %s, step=%s", op, id, result.Status, result.Step)
	return newResponse(session, result), nil
}

// loadLocked проверяет владельца, берет блокировку сессии и перечитывает ее под блокировкой.
// Вызывающий обязан вызвать unlock.
func (s *Service) loadLocked(ctx context.Context, access *domain.AccessSession, id, op string) (*domain.BookingSession, func(), error) {
	if _, err := s.load(ctx, access, id); err != nil {
		return nil, nil, err
	}

	token, acquired, err := s.repo.LockBookingSession(ctx, id)
	if err != nil {
		s.logger.Error("%s: failed to lock session id=%s: %v", op, id, err)
		return nil, nil, fmt.Errorf("%w: %s - lock session: %v", ErrInternal, op, err)
	}
	if !acquired {
		s.logger.Warn("%s: session id=%s is busy", op, id)
		return nil, nil, ErrSessionBusy
	}

	unlock := func() {
		if err := s.repo.UnlockBookingSession(context.WithoutCancel(ctx), id, token); err != nil {
			s.logger.Error("%s: failed to unlock session id=%s: %v", op, id, err)
		}
	}

	// Сессия могла измениться или завершиться, пока блокировка была у другого запроса
	session, err := s.load(ctx, access, id)
	if err != nil {
		unlock()
		return nil, nil, err
	}

	return session, unlock, nil
}

func (s *Service) load(ctx context.Context, access *domain.AccessSession, id string) (*domain.BookingSession, error) {
	session, err := s.repo.GetBookingSession(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("booking session id=%s not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to load booking session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: load session: %v", ErrInternal, err)
	}

	if !access.Owns(session.OwnerID) {
		s.logger.Warn("booking session id=%s: access denied for subject=%s", id, access.Subject)
		return nil, ErrAccessDenied
	}

	return session, nil
}
