package get_eligible_professionals

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getEligibleProfessionals "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_eligible_professionals"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgCompanyNotFound  = "компания не найдена"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidDate      = "некорректная дата"
)

type Handler struct {
	useCase GetEligibleProfessionalsUseCase
	logger  Logger
}

func NewHandler(useCase GetEligibleProfessionalsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/services/{serviceId}/professionals
// Query params: date (required, YYYY-MM-DD)
// Публичный endpoint - мастера со свободным временем на дату
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(companyID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getEligibleProfessionals.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getEligibleProfessionals.ErrServiceNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getEligibleProfessionals.ErrInvalidDate):
			h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getEligibleProfessionals.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/services/{id}/professionals - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/services/{id}/professionals - Failed: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
