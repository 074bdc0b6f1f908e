package submit_review

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
)

// DraftRepository интерфейс хранилища черновиков с блокировкой отправки
type DraftRepository interface {
	GetReviewDraft(ctx context.Context, id string) (*domain.ReviewDraft, error)
	DeleteReviewDraft(ctx context.Context, id string) error
	LockReviewDraft(ctx context.Context, draftID string) (string, bool, error)
	UnlockReviewDraft(ctx context.Context, draftID, token string) error
}

// ReviewAPIClient интерфейс записи отзывов во внешний API
type ReviewAPIClient interface {
	CreateReview(ctx context.Context, token string, req *salonapi.CreateReviewRequest, idempotencyKey string) error
}

// Journal интерфейс журнала попыток записи
type Journal interface {
	Append(ctx context.Context, attempt *domain.SubmissionAttempt) error
}

// Metrics интерфейс метрик отправки отзывов
type Metrics interface {
	ObserveReviewWrite(targetType string, ok bool)
	ObserveReviewSubmission(ok bool)
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
