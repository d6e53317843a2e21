package get_nearest_date

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getNearestDate "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_nearest_date"
)

// NearestDateResponse HTTP response model
// found == false означает, что во всем окне бронирования нет доступных дат
type NearestDateResponse struct {
	CompanyID int64   `json:"companyId"`
	ServiceID int64   `json:"serviceId"`
	Found     bool    `json:"found"`
	Date      *string `json:"date,omitempty"`
	Status    string  `json:"status,omitempty"`
	OpenSlots int     `json:"openSlots,omitempty"`
}

// ToUseCaseRequest создает запрос use case из URL и query параметров
func ToUseCaseRequest(companyID, serviceID int64, fromStr string) (*getNearestDate.Request, error) {
	req := &getNearestDate.Request{
		CompanyID: companyID,
		ServiceID: serviceID,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getNearestDate.Response) *NearestDateResponse {
	result := &NearestDateResponse{
		CompanyID: resp.CompanyID,
		ServiceID: resp.ServiceID,
		Found:     resp.Found,
		Status:    resp.Status,
		OpenSlots: resp.OpenSlots,
	}

	if resp.Date != nil {
		date := resp.Date.Format(domain.DateFormat)
		result.Date = &date
	}

	return result
}
