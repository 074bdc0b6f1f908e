package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
)

type BookingFlowService interface {
	ConfirmSlot(ctx context.Context, access *domain.AccessSession, id string) (*bookingflow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
