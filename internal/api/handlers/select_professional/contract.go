package select_professional

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
)

type SessionEngine interface {
	SelectProfessional(ctx context.Context, sessionID string, req *models.SelectProfessionalRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
