package select_professional

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
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "требуется аутентификация"
	msgSessionNotFound      = "сессия не найдена или истекла"
	msgAccessDenied         = "доступ к чужой сессии запрещен"
	msgProfessionalNotFound = "специалист не найден"
	msgSlotUnavailable      = "слот недоступен у выбранного специалиста"
	msgInvalidTransition    = "операция недопустима на текущем шаге сессии"
)

// SelectProfessionalRequest HTTP request model
type SelectProfessionalRequest struct {
	ProfessionalID int64 `json:"professional_id"`
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

// Handle POST /api/v1/sessions/{sessionId}/professional
// Выбор специалиста (опциональное уточнение)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/professional - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req SelectProfessionalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/professional - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.engine.SelectProfessional(r.Context(), sessionID, &models.SelectProfessionalRequest{
		UserID:         userID,
		ProfessionalID: req.ProfessionalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/professional - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, session.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/professional - Access denied: session_id=%s, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, session.ErrProfessionalNotFound):
			h.logger.Warn("POST /sessions/{id}/professional - Professional not found: session_id=%s, professional_id=%d",
				sessionID, req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, session.ErrSlotUnavailable):
			h.logger.Warn("POST /sessions/{id}/professional - Slot unavailable for professional: session_id=%s, professional_id=%d",
				sessionID, req.ProfessionalID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, session.ErrInvalidTransition):
			h.logger.Warn("POST /sessions/{id}/professional - Invalid transition: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, session.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/professional - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /sessions/{id}/professional - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
