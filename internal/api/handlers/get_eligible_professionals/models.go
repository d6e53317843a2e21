package get_eligible_professionals

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getEligibleProfessionals "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_eligible_professionals"
)

// ProfessionalsResponse HTTP response model
// anyProfessional == true означает, что услуга не привязана к мастерам
type ProfessionalsResponse struct {
	CompanyID       int64          `json:"companyId"`
	ServiceID       int64          `json:"serviceId"`
	Date            string         `json:"date"`
	AnyProfessional bool           `json:"anyProfessional"`
	Professionals   []Professional `json:"professionals"`
}

// Professional мастер со свободным временем
type Professional struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getEligibleProfessionals.Response) *ProfessionalsResponse {
	professionals := make([]Professional, len(resp.Professionals))
	for i, p := range resp.Professionals {
		professionals[i] = Professional{ID: p.ID, Name: p.Name}
	}

	return &ProfessionalsResponse{
		CompanyID:       resp.CompanyID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		AnyProfessional: resp.AnyProfessional,
		Professionals:   professionals,
	}
}

// ToUseCaseRequest создает запрос use case из URL и query параметров
func ToUseCaseRequest(companyID, serviceID int64, dateStr string) (*getEligibleProfessionals.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getEligibleProfessionals.Request{
		CompanyID: companyID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
