package config

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
)

// ConfigRepository интерфейс репозитория конфигурации доступности
type ConfigRepository interface {
	GetByCompanyAndService(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error)
	GetConfigWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error)
	GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.AvailabilityConfig, error)
	Upsert(ctx context.Context, config *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*staffservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
