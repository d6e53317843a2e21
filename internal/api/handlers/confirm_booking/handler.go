package confirm_booking

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
	msgSlotUnavailable   = "слот больше недоступен, выберите другое время"
	msgInvalidTransition = "операция недопустима на текущем шаге сессии"
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

// Handle POST /api/v1/sessions/{sessionId}/confirm
// Подтверждение бронирования: запись в инвентарь под сериализуемой транзакцией
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/confirm - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.engine.Confirm(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSlotConflict):
			// Слот перехвачен параллельным бронированием: сессия уже откатана
			// на выбор времени, отдаем клиенту обновленное состояние
			h.logger.Warn("POST /sessions/{id}/confirm - Slot conflict: session_id=%s", sessionID)
			handlers.RespondJSON(w, http.StatusConflict, result)

		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/confirm - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, session.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/confirm - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, session.ErrSlotUnavailable):
			h.logger.Warn("POST /sessions/{id}/confirm - Slot unavailable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, session.ErrInvalidTransition):
			h.logger.Warn("POST /sessions/{id}/confirm - Invalid transition: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /sessions/{id}/confirm - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/confirm - Booking confirmed: session_id=%s, user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
