package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// IdempotencyKeyHeader заголовок с ключом идемпотентности записи
const IdempotencyKeyHeader = "Idempotency-Key"

// maxErrorBody ограничение на чтение тела ошибки
const maxErrorBody = 64 << 10

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с Booking/Review API салона
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfile получает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateReview сохраняет одну запись отзыва
func (c *Client) CreateReview(ctx context.Context, token string, req *CreateReviewRequest, idempotencyKey string) error {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyKeyHeader] = idempotencyKey
	}

	if err := c.do(ctx, http.MethodPost, "/reviews", token, headers, req, nil); err != nil {
		return err
	}

	c.log.Info("salonapi: review saved appointment_id=%d target=%s/%d",
		req.AppointmentID, req.TargetType, req.TargetID)
	return nil
}

// ConfirmBooking передает выбранный слот во внешний API бронирования
func (c *Client) ConfirmBooking(ctx context.Context, token string, req *ConfirmBookingRequest) (*BookingConfirmation, error) {
	var confirmation BookingConfirmation
	if err := c.do(ctx, http.MethodPost, "/bookings", token, nil, req, &confirmation); err != nil {
		return nil, err
	}

	c.log.Info("salonapi: booking confirmed booking_id=%d salon_id=%d date=%s time=%s",
		confirmation.BookingID, req.SalonID, req.Date, req.Time)
	return &confirmation, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path, token string,
	headers map[string]string,
	body interface{},
	out interface{},
) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute %s %s: %v", ErrInternal, method, path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return c.apiError(resp, ErrUnauthorized)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return c.apiError(resp, ErrRejected)
	case resp.StatusCode >= 500:
		return c.apiError(resp, ErrUnavailable)
	default:
		return c.apiError(resp, ErrInvalidResponse)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s %s response: %v", ErrInvalidResponse, method, path, err)
	}

	return nil
}

// apiError читает тело ошибки и достает из него сообщение сервера
func (c *Client) apiError(resp *http.Response, kind error) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload ErrorResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			c.log.Warn("salonapi: non-JSON error body, status=%d: %s", resp.StatusCode, string(raw))
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    payload.Message,
		kind:       kind,
	}
}
