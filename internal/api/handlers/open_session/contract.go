package open_session

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
)

type SessionEngine interface {
	Open(ctx context.Context, req *models.OpenSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
