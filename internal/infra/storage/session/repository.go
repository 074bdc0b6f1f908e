package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

const (
	bookingSessionPrefix = "booking_session:"
	reviewDraftPrefix    = "review_draft:"
	lockSuffix           = ":lock"
)

// Repository хранилище сессий бронирования и черновиков отзывов
type Repository struct {
	kv      KV
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRepository создает репозиторий.
// ttl - время жизни сессий и черновиков, lockTTL - максимальное время удержания блокировки.
// lockTTL должен превышать самую долгую операцию под блокировкой (три записи отзыва).
func NewRepository(kv KV, ttl, lockTTL time.Duration) *Repository {
	return &Repository{
		kv:      kv,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

// SaveBookingSession сохраняет сессию бронирования, продлевая TTL
func (r *Repository) SaveBookingSession(ctx context.Context, s *domain.BookingSession) error {
	return r.put(ctx, bookingSessionPrefix+s.ID, fromDomainSession(s))
}

// GetBookingSession получает сессию бронирования по ID
func (r *Repository) GetBookingSession(ctx context.Context, id string) (*domain.BookingSession, error) {
	var record bookingSessionRecord
	if err := r.get(ctx, bookingSessionPrefix+id, &record); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// DeleteBookingSession удаляет сессию (сброс при уходе с экрана бронирования)
func (r *Repository) DeleteBookingSession(ctx context.Context, id string) error {
	if err := r.kv.Del(ctx, bookingSessionPrefix+id); err != nil {
		return fmt.Errorf("%w: DeleteBookingSession: %v", ErrBackend, err)
	}
	return nil
}

// SaveReviewDraft сохраняет черновик отзыва, продлевая TTL
func (r *Repository) SaveReviewDraft(ctx context.Context, d *domain.ReviewDraft) error {
	return r.put(ctx, reviewDraftPrefix+d.ID, fromDomainDraft(d))
}

// GetReviewDraft получает черновик отзыва по ID
func (r *Repository) GetReviewDraft(ctx context.Context, id string) (*domain.ReviewDraft, error) {
	var record reviewDraftRecord
	if err := r.get(ctx, reviewDraftPrefix+id, &record); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// DeleteReviewDraft удаляет черновик отзыва
func (r *Repository) DeleteReviewDraft(ctx context.Context, id string) error {
	if err := r.kv.Del(ctx, reviewDraftPrefix+id); err != nil {
		return fmt.Errorf("%w: DeleteReviewDraft: %v", ErrBackend, err)
	}
	return nil
}

// LockReviewDraft захватывает черновик на время отправки или изменения.
// Возвращает токен владельца; ok=false, если черновик уже захвачен.
func (r *Repository) LockReviewDraft(ctx context.Context, draftID string) (string, bool, error) {
	return r.lock(ctx, reviewDraftPrefix+draftID+lockSuffix)
}

// UnlockReviewDraft снимает блокировку, если она все еще принадлежит token
func (r *Repository) UnlockReviewDraft(ctx context.Context, draftID, token string) error {
	return r.unlock(ctx, reviewDraftPrefix+draftID+lockSuffix, token)
}

// LockBookingSession захватывает сессию бронирования на время перехода или подтверждения
func (r *Repository) LockBookingSession(ctx context.Context, sessionID string) (string, bool, error) {
	return r.lock(ctx, bookingSessionPrefix+sessionID+lockSuffix)
}

// UnlockBookingSession снимает блокировку, если она все еще принадлежит token
func (r *Repository) UnlockBookingSession(ctx context.Context, sessionID, token string) error {
	return r.unlock(ctx, bookingSessionPrefix+sessionID+lockSuffix, token)
}

func (r *Repository) lock(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.kv.SetNX(ctx, key, []byte(token), r.lockTTL)
	if err != nil {
		return "", false, fmt.Errorf("%w: lock %s: %v", ErrBackend, key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// unlock не трогает чужую блокировку: после истечения lockTTL ключ мог захватить другой владелец
func (r *Repository) unlock(ctx context.Context, key, token string) error {
	if _, err := r.kv.DelIfValue(ctx, key, []byte(token)); err != nil {
		return fmt.Errorf("%w: unlock %s: %v", ErrBackend, key, err)
	}
	return nil
}

func (r *Repository) put(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, key, err)
	}
	if err := r.kv.Set(ctx, key, payload, r.ttl); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrBackend, key, err)
	}
	return nil
}

func (r *Repository) get(ctx context.Context, key string, out interface{}) error {
	payload, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("%w: get %s: %v", ErrBackend, key, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}
	return nil
}
