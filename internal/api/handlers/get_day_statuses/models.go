package get_day_statuses

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getDayStatuses "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_day_statuses"
)

// DayStatusesResponse HTTP response model
type DayStatusesResponse struct {
	CompanyID   int64  `json:"companyId"`
	ServiceID   int64  `json:"serviceId"`
	WindowStart string `json:"windowStart"`
	HorizonDays int    `json:"horizonDays"`
	Days        []Day  `json:"days"`
}

// Day классификация одной даты календаря
type Day struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	OpenSlots int    `json:"openSlots"`
}

// ToUseCaseRequest создает запрос use case из URL и query параметров
func ToUseCaseRequest(companyID, serviceID int64, fromStr, daysStr string) (*getDayStatuses.Request, error) {
	req := &getDayStatuses.Request{
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

	if daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return nil, err
		}
		req.Days = &days
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayStatuses.Response) *DayStatusesResponse {
	days := make([]Day, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = Day{
			Date:      d.Date.Format(domain.DateFormat),
			Status:    d.Status,
			OpenSlots: d.OpenSlots,
		}
	}

	return &DayStatusesResponse{
		CompanyID:   resp.CompanyID,
		ServiceID:   resp.ServiceID,
		WindowStart: resp.WindowStart.Format(domain.DateFormat),
		HorizonDays: resp.HorizonDays,
		Days:        days,
	}
}
