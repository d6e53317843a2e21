package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со StaffService (справочник компаний, услуг и мастеров)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCompany получает компанию по ID
func (c *Client) GetCompany(ctx context.Context, companyID int64) (*Company, error) {
	url := fmt.Sprintf("%s/internal/companies/%d", c.baseURL, companyID)

	var company Company
	if err := c.getJSON(ctx, url, &company, ErrCompanyNotFound); err != nil {
		return nil, err
	}

	return &company, nil
}

// GetService получает услугу компании по ID
func (c *Client) GetService(ctx context.Context, companyID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/companies/%d/services/%d", c.baseURL, companyID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetProfessionals получает список мастеров, оказывающих услугу
// Пустой список означает, что услуга не привязана к мастерам -
// доступность для неё считается без разреза по мастерам
func (c *Client) GetProfessionals(ctx context.Context, companyID, serviceID int64) ([]Professional, error) {
	url := fmt.Sprintf("%s/internal/companies/%d/services/%d/professionals", c.baseURL, companyID, serviceID)

	professionals := make([]Professional, 0)
	if err := c.getJSON(ctx, url, &professionals, ErrServiceNotFound); err != nil {
		return nil, err
	}

	// Неактивные мастера не участвуют в подборе
	active := make([]Professional, 0, len(professionals))
	for _, p := range professionals {
		if p.IsActive {
			active = append(active, p)
		}
	}

	return active, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
