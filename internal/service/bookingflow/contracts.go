package bookingflow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
)

// SessionRepository интерфейс хранилища сессий бронирования
type SessionRepository interface {
	SaveBookingSession(ctx context.Context, s *domain.BookingSession) error
	GetBookingSession(ctx context.Context, id string) (*domain.BookingSession, error)
	DeleteBookingSession(ctx context.Context, id string) error
	LockBookingSession(ctx context.Context, sessionID string) (string, bool, error)
	UnlockBookingSession(ctx context.Context, sessionID, token string) error
}

// BookingAPIClient интерфейс внешнего API подтверждения бронирования
type BookingAPIClient interface {
	ConfirmBooking(ctx context.Context, token string, req *salonapi.ConfirmBookingRequest) (*salonapi.BookingConfirmation, error)
}

// Metrics интерфейс метрик подтверждения слота
type Metrics interface {
	ObserveBookingConfirmation(ok bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
