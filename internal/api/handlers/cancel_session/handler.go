package cancel_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/session"
)

const (
	msgUnauthorized      = "требуется аутентификация"
	msgSessionNotFound   = "сессия не найдена или истекла"
	msgAccessDenied      = "доступ к чужой сессии запрещен"
	msgInvalidTransition = "сессия уже завершена"
)

type Handler struct {
	engine SessionEngine
	logger Logger
}

func NewHandler(engine SessionEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle DELETE /api/v1/sessions/{sessionId}
// Отмена незавершенной сессии бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /sessions/{id} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.engine.Cancel(r.Context(), sessionID, userID); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("DELETE /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, session.ErrAccessDenied):
			h.logger.Warn("DELETE /sessions/{id} - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, session.ErrInvalidTransition):
			h.logger.Warn("DELETE /sessions/{id} - Session already completed: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("DELETE /sessions/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /sessions/{id} - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session cancelled: session_id=%s, user_id=%d", sessionID, userID)
	handlers.RespondNoContent(w)
}
