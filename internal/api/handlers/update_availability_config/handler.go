package update_availability_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgCompanyNotFound    = "компания не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgAccessDenied       = "доступ только для менеджеров компании"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/companies/{companyId}/availability-config
// Защищенный endpoint - создание или обновление конфигурации доступности
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /companies/{id}/availability-config - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /companies/{id}/availability-config - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /companies/{id}/availability-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(companyID, userID))
	if err != nil {
		switch {
		case errors.Is(err, config.ErrCompanyNotFound):
			h.logger.Warn("PUT /companies/{id}/availability-config - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, config.ErrServiceNotFound):
			h.logger.Warn("PUT /companies/{id}/availability-config - Service not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /companies/{id}/availability-config - Access denied: user_id=%d, company_id=%d",
				userID, companyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /companies/{id}/availability-config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /companies/{id}/availability-config - Failed: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /companies/{id}/availability-config - Config saved: company_id=%d, config_id=%d",
		companyID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
