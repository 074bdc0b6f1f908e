package booking_steps

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
)

type BookingFlowService interface {
	SubmitPhone(ctx context.Context, access *domain.AccessSession, id string, phone string) (*bookingflow.Response, error)
	ChooseNearestSalon(ctx context.Context, access *domain.AccessSession, id string) (*bookingflow.Response, error)
	ToggleService(ctx context.Context, access *domain.AccessSession, id string, serviceID int64) (*bookingflow.Response, error)
	ConfirmServices(ctx context.Context, access *domain.AccessSession, id string) (*bookingflow.Response, error)
	ChooseDate(ctx context.Context, access *domain.AccessSession, id string, date time.Time) (*bookingflow.Response, error)
	ChooseTime(ctx context.Context, access *domain.AccessSession, id string, value string) (*bookingflow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
