package reviews

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
)

// DraftRepository интерфейс хранилища черновиков отзывов.
// Блокировку черновика держит отправка; правка и закрытие берут ту же блокировку.
type DraftRepository interface {
	SaveReviewDraft(ctx context.Context, d *domain.ReviewDraft) error
	GetReviewDraft(ctx context.Context, id string) (*domain.ReviewDraft, error)
	DeleteReviewDraft(ctx context.Context, id string) error
	LockReviewDraft(ctx context.Context, draftID string) (string, bool, error)
	UnlockReviewDraft(ctx context.Context, draftID, token string) error
}

// ProfileClient интерфейс получения профиля текущего пользователя
type ProfileClient interface {
	GetProfile(ctx context.Context, token string) (*salonapi.Profile, error)
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
