package get_open_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getOpenSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_open_slots"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgCompanyNotFound  = "компания не найдена"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidDate      = "некорректная дата"
	msgDateOutOfHorizon = "дата за пределами окна бронирования"
)

type Handler struct {
	useCase GetOpenSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetOpenSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/services/{serviceId}/open-slots
// Query params: date (required, YYYY-MM-DD), professionalId (опционально)
// Публичный endpoint - открытые слоты даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(companyID, serviceID, dateStr, r.URL.Query().Get("professionalId"))
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getOpenSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getOpenSlots.ErrServiceNotFound):
			h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getOpenSlots.ErrInvalidDate):
			h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getOpenSlots.ErrDateOutOfHorizon):
			h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Date out of horizon: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateOutOfHorizon)

		case errors.Is(err, getOpenSlots.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/services/{id}/open-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/services/{id}/open-slots - Failed: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
