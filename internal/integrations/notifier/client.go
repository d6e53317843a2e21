package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingNotification данные уведомления о подтвержденном бронировании
type BookingNotification struct {
	EntryID          int64   `json:"entry_id"`
	CompanyID        int64   `json:"company_id"`
	ServiceName      string  `json:"service_name"`
	ProfessionalName string  `json:"professional_name,omitempty"`
	Date             string  `json:"date"`       // YYYY-MM-DD
	StartTime        string  `json:"start_time"` // HH:MM
	ClientName       string  `json:"client_name"`
	ClientPhone      string  `json:"client_phone"`
	ClientEmail      *string `json:"client_email,omitempty"`
}

// Client fire-and-forget клиент сервиса уведомлений
// Вызывается после успешного коммита бронирования; его ошибки логируются
// вызывающей стороной и никогда не откатывают бронирование
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет уведомление о подтвержденном бронировании
func (c *Client) SendBookingConfirmation(ctx context.Context, notification *BookingNotification) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-confirmed", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.log.Info("SendBookingConfirmation: notification sent for entry_id=%d", notification.EntryID)
	return nil
}
