package submit_review

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("submit_review: draft not found")

	// ErrAccessDenied возвращается, когда черновик принадлежит другому пользователю
	ErrAccessDenied = errors.New("submit_review: access denied")

	// ErrNoRatings возвращается, когда не выставлено ни одной оценки
	ErrNoRatings = errors.New("submit_review: at least one rating is required")

	// ErrInvalidRatings возвращается, когда оценка вне диапазона 0..5
	ErrInvalidRatings = errors.New("submit_review: rating out of range")

	// ErrIdentityUnresolved возвращается, когда у черновика нет ID автора
	ErrIdentityUnresolved = errors.New("submit_review: reviewer identity unresolved")

	// ErrSubmitInProgress возвращается, когда отправка этого черновика уже идет
	ErrSubmitInProgress = errors.New("submit_review: submission already in progress")

	// ErrWriteFailed возвращается, когда одна из записей не сохранилась
	ErrWriteFailed = errors.New("submit_review: review write failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_review: internal error")
)

// WriteFailure описывает прерванную отправку.
// Записи из Persisted уже сохранены и не откатываются; следующие не отправлялись.
type WriteFailure struct {
	Target        domain.TargetType
	Persisted     []domain.TargetType
	ServerMessage string // сообщение API, может быть пустым
	Err           error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("%v: target=%s, persisted=%v: %v", ErrWriteFailed, e.Target, e.Persisted, e.Err)
}

func (e *WriteFailure) Unwrap() []error {
	return []error{ErrWriteFailed, e.Err}
}
