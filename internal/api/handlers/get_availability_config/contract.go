package get_availability_config

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

type ConfigService interface {
	GetEffective(ctx context.Context, companyID int64, serviceID *int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
