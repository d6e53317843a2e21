package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
)

// SessionStore интерфейс хранилища сессий бронирования
type SessionStore interface {
	Save(ctx context.Context, session *domain.BookingSession, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*domain.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// InventoryRepository интерфейс репозитория инвентаря календаря
type InventoryRepository interface {
	Create(ctx context.Context, entry *domain.CalendarEntry) (*domain.CalendarEntry, error)
	GetByCompanyAndDate(ctx context.Context, companyID int64, date time.Time) ([]*domain.CalendarEntry, error)
	GetByCompanyAndDateRange(ctx context.Context, companyID int64, start, end time.Time) ([]*domain.CalendarEntry, error)
}

// TemplateRepository интерфейс репозитория шаблонов расписания
type TemplateRepository interface {
	GetByCompanyAndService(ctx context.Context, companyID, serviceID int64) ([]*domain.ScheduleTemplate, error)
}

// ConfigResolver интерфейс резолвера эффективной конфигурации доступности
type ConfigResolver interface {
	Resolve(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*staffservice.Service, error)
	GetProfessionals(ctx context.Context, companyID, serviceID int64) ([]staffservice.Professional, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendBookingConfirmation(ctx context.Context, notification *notifier.BookingNotification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
