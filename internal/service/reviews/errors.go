package reviews

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("reviews: draft not found")

	// ErrAccessDenied возвращается, когда черновик принадлежит другому пользователю
	ErrAccessDenied = errors.New("reviews: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reviews: invalid input data")

	// ErrIdentityUnresolved возвращается, когда не удалось получить ID автора отзыва.
	// Окно отзыва должно закрыться.
	ErrIdentityUnresolved = errors.New("reviews: reviewer identity unresolved")

	// ErrSubmitInProgress возвращается, когда черновик сейчас отправляется
	ErrSubmitInProgress = errors.New("reviews: draft is being submitted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews: internal error")
)
