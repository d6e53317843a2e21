package get_day_statuses

import (
	"context"

	getDayStatuses "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_day_statuses"
)

type GetDayStatusesUseCase interface {
	Execute(ctx context.Context, req *getDayStatuses.Request) (*getDayStatuses.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
