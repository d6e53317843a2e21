package get_open_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getOpenSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_open_slots"
)

// OpenSlotsResponse HTTP response model
type OpenSlotsResponse struct {
	CompanyID      int64      `json:"companyId"`
	ServiceID      int64      `json:"serviceId"`
	Date           string     `json:"date"`
	ProfessionalID *int64     `json:"professionalId,omitempty"`
	Slots          []OpenSlot `json:"slots"`
}

// OpenSlot открытый слот
type OpenSlot struct {
	TemplateID int64  `json:"templateId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOpenSlots.Response) *OpenSlotsResponse {
	slots := make([]OpenSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = OpenSlot{
			TemplateID: s.TemplateID,
			StartTime:  s.StartTime.String(),
			EndTime:    s.EndTime.String(),
		}
	}

	return &OpenSlotsResponse{
		CompanyID:      resp.CompanyID,
		ServiceID:      resp.ServiceID,
		Date:           resp.Date.Format(domain.DateFormat),
		ProfessionalID: resp.ProfessionalID,
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из URL и query параметров
func ToUseCaseRequest(companyID, serviceID int64, dateStr, professionalIDStr string) (*getOpenSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getOpenSlots.Request{
		CompanyID: companyID,
		ServiceID: serviceID,
		Date:      date,
	}

	if professionalIDStr != "" {
		professionalID, err := strconv.ParseInt(professionalIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &professionalID
	}

	return req, nil
}
