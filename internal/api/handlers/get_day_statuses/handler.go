package get_day_statuses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getDayStatuses "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_day_statuses"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidServiceID = "некорректный ID услуги"
	msgCompanyNotFound  = "компания не найдена"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidParams    = "некорректные параметры запроса, ожидается from=YYYY-MM-DD и целое days"
)

type Handler struct {
	useCase GetDayStatusesUseCase
	logger  Logger
}

func NewHandler(useCase GetDayStatusesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/services/{serviceId}/day-statuses
// Публичный endpoint - раскраска календаря окна бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/day-statuses - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/day-statuses - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(companyID, serviceID, r.URL.Query().Get("from"), r.URL.Query().Get("days"))
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/day-statuses - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDayStatuses.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/day-statuses - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getDayStatuses.ErrServiceNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/day-statuses - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getDayStatuses.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/services/{id}/day-statuses - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/services/{id}/day-statuses - Failed: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
