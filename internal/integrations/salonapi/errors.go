package salonapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized возвращается, когда API отклонил токен доступа
	ErrUnauthorized = errors.New("salonapi client: unauthorized")

	// ErrRejected возвращается, когда API отклонил запрос (4xx)
	ErrRejected = errors.New("salonapi client: request rejected")

	// ErrUnavailable возвращается при ответах 5xx
	ErrUnavailable = errors.New("salonapi client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, сборка запроса)
	ErrInternal = errors.New("salonapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("salonapi client: invalid response")
)

// APIError ошибка с кодом ответа и сообщением сервера
type APIError struct {
	StatusCode int
	Message    string // человекочитаемое сообщение от сервера, может быть пустым
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: status %d", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// ServerMessage извлекает сообщение сервера из цепочки ошибок
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
