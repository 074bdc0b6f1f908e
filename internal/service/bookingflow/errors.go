package bookingflow

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("bookingflow: session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("bookingflow: access denied")

	// ErrSessionBusy возвращается, когда сессию уже изменяет другой запрос
	// (например, слот подтверждается)
	ErrSessionBusy = errors.New("bookingflow: session is busy")

	// ErrConfirmationFailed возвращается, когда API бронирования отклонил слот
	ErrConfirmationFailed = errors.New("bookingflow: slot confirmation failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookingflow: internal error")
)
