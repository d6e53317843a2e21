package get_nearest_date

import (
	"context"

	getNearestDate "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_nearest_date"
)

type GetNearestDateUseCase interface {
	Execute(ctx context.Context, req *getNearestDate.Request) (*getNearestDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
