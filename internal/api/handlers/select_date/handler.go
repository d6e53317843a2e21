package select_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/session"
	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgAccessDenied       = "доступ к чужой сессии запрещен"
	msgDateNotBookable    = "дата недоступна для бронирования"
	msgInvalidTransition  = "операция недопустима на текущем шаге сессии"
)

// SelectDateRequest HTTP request model
type SelectDateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

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

// Handle POST /api/v1/sessions/{sessionId}/date
// Выбор даты бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/date - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.engine.SelectDate(r.Context(), sessionID, &models.SelectDateRequest{
		UserID: userID,
		Date:   req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/date - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, session.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/date - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, session.ErrDateNotBookable):
			h.logger.Warn("POST /sessions/{id}/date - Date not bookable: session_id=%s, date=%s", sessionID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDateNotBookable)

		case errors.Is(err, session.ErrInvalidTransition):
			h.logger.Warn("POST /sessions/{id}/date - Invalid transition: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/date - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /sessions/{id}/date - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
