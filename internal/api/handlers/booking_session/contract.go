package booking_session

import (
	"context"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
)

type BookingFlowService interface {
	Start(ctx context.Context, access *domain.AccessSession) (*bookingflow.Response, error)
	Get(ctx context.Context, access *domain.AccessSession, id string) (*bookingflow.Response, error)
	Abandon(ctx context.Context, access *domain.AccessSession, id string) (*bookingflow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
