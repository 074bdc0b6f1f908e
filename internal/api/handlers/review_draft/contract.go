package review_draft

import (
	"context"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/reviews"
)

type ReviewService interface {
	Open(ctx context.Context, access *domain.AccessSession, req *reviews.OpenDraftRequest) (*reviews.DraftResponse, error)
	Get(ctx context.Context, access *domain.AccessSession, id string) (*reviews.DraftResponse, error)
	Update(ctx context.Context, access *domain.AccessSession, id string, req *reviews.UpdateDraftRequest) (*reviews.DraftResponse, error)
	Close(ctx context.Context, access *domain.AccessSession, id string) (*reviews.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
