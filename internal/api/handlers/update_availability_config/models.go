package update_availability_config

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

// UpdateConfigRequest HTTP request model
// Не переданные поля заполняются дефолтами движка
type UpdateConfigRequest struct {
	ServiceID            *int64 `json:"serviceId,omitempty"`
	HorizonDays          *int   `json:"horizonDays,omitempty"`
	LowSlotsThreshold    *int   `json:"lowSlotsThreshold,omitempty"`
	SameDayCutoffMinutes *int   `json:"sameDayCutoffMinutes,omitempty"`
	UnassignedBlocksAll  *bool  `json:"unassignedBlocksAll,omitempty"`
	RequiresProfessional *bool  `json:"requiresProfessional,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateConfigRequest) ToServiceRequest(companyID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:               userID,
		CompanyID:            companyID,
		ServiceID:            r.ServiceID,
		HorizonDays:          r.HorizonDays,
		LowSlotsThreshold:    r.LowSlotsThreshold,
		SameDayCutoffMinutes: r.SameDayCutoffMinutes,
		UnassignedBlocksAll:  r.UnassignedBlocksAll,
		RequiresProfessional: r.RequiresProfessional,
	}
}
