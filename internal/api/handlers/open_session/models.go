package open_session

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
)

// OpenSessionRequest HTTP request model
type OpenSessionRequest struct {
	CompanyID    int64 `json:"companyId"`
	ServiceID    int64 `json:"serviceId"`
	RequireEmail bool  `json:"requireEmail"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос движка сессий
func (r *OpenSessionRequest) ToServiceRequest(userID int64) *models.OpenSessionRequest {
	return &models.OpenSessionRequest{
		UserID:       userID,
		CompanyID:    r.CompanyID,
		ServiceID:    r.ServiceID,
		RequireEmail: r.RequireEmail,
	}
}
