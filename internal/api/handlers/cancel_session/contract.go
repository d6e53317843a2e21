package cancel_session

import (
	"context"
)

type SessionEngine interface {
	Cancel(ctx context.Context, sessionID string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
