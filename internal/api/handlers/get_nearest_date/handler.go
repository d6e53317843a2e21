package get_nearest_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getNearestDate "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_nearest_date"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidServiceID = "некорректный ID услуги"
	msgCompanyNotFound  = "компания не найдена"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidParams    = "некорректные параметры запроса, ожидается from=YYYY-MM-DD"
)

type Handler struct {
	useCase GetNearestDateUseCase
	logger  Logger
}

func NewHandler(useCase GetNearestDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/services/{serviceId}/nearest-date
// Публичный endpoint - ближайшая доступная дата в окне бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/nearest-date - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/nearest-date - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(companyID, serviceID, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/nearest-date - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getNearestDate.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/nearest-date - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getNearestDate.ErrServiceNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/nearest-date - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getNearestDate.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/services/{id}/nearest-date - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/services/{id}/nearest-date - Failed: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
