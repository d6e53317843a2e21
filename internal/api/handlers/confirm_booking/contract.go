package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
)

type SessionEngine interface {
	Confirm(ctx context.Context, sessionID string, userID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
