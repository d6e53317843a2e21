package get_availability_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidServiceID = "некорректный ID услуги"
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

// Handle GET /api/v1/companies/{companyId}/availability-config
// Query params: serviceId (опционально)
// Публичный endpoint - эффективная конфигурация доступности
// Отсутствие сохраненной конфигурации не ошибка: возвращаются дефолты движка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/availability-config - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var serviceID *int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		parsed, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/availability-config - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &parsed
	}

	result, err := h.service.GetEffective(r.Context(), companyID, serviceID)
	if err != nil {
		h.logger.Error("GET /companies/{id}/availability-config - Failed: company_id=%d, error=%v",
			companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
