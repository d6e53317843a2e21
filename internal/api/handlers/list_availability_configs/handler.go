package list_availability_configs

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
	msgInvalidCompanyID = "некорректный ID компании"
	msgUnauthorized     = "требуется аутентификация"
	msgCompanyNotFound  = "компания не найдена"
	msgAccessDenied     = "доступ только для менеджеров компании"
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

// Handle GET /api/v1/companies/{companyId}/availability-configs
// Защищенный endpoint - все сохраненные конфигурации компании (для менеджеров)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/availability-configs - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/availability-configs - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetAllByCompany(r.Context(), companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/availability-configs - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/availability-configs - Access denied: user_id=%d, company_id=%d",
				userID, companyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /companies/{id}/availability-configs - Failed: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
