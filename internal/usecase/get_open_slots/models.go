package get_open_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса открытых слотов на дату
type Request struct {
	CompanyID      int64     // ID компании
	ServiceID      int64     // ID услуги
	Date           time.Time // Дата (без времени)
	ProfessionalID *int64    // Опциональный разрез по мастеру
}

// Response модель ответа со списком открытых слотов
type Response struct {
	CompanyID      int64
	ServiceID      int64
	Date           time.Time
	ProfessionalID *int64
	Slots          []Slot
}

// Slot открытый слот
type Slot struct {
	TemplateID int64
	StartTime  types.TimeString
	EndTime    types.TimeString
}
