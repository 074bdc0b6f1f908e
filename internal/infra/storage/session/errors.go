package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия бронирования не найдена или истекла
	ErrSessionNotFound = errors.New("session.repository: booking session not found")

	// ErrDraftNotFound возвращается, когда черновик отзыва не найден или истек
	ErrDraftNotFound = errors.New("session.repository: review draft not found")

	// ErrKeyNotFound возвращается KV-хранилищем при отсутствии ключа
	ErrKeyNotFound = errors.New("session.kv: key not found")

	// ErrEncode возвращается при ошибке сериализации
	ErrEncode = errors.New("session.repository: failed to encode")

	// ErrDecode возвращается при ошибке десериализации
	ErrDecode = errors.New("session.repository: failed to decode")

	// ErrBackend возвращается при ошибке хранилища
	ErrBackend = errors.New("session.repository: backend error")
)
