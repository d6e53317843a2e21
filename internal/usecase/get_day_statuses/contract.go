package get_day_statuses

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
)

// InventoryRepository интерфейс репозитория инвентаря календаря
type InventoryRepository interface {
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
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
