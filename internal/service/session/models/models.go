package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// OpenSessionRequest запрос на открытие сессии бронирования
type OpenSessionRequest struct {
	UserID       int64 `json:"userId"`
	CompanyID    int64 `json:"companyId"`
	ServiceID    int64 `json:"serviceId"`
	RequireEmail bool  `json:"requireEmail"`
}

// SelectDateRequest запрос на выбор даты
type SelectDateRequest struct {
	UserID int64  `json:"userId"`
	Date   string `json:"date"` // YYYY-MM-DD
}

// SelectSlotRequest запрос на выбор слота
type SelectSlotRequest struct {
	UserID    int64  `json:"userId"`
	StartTime string `json:"startTime"` // HH:MM
}

// SelectProfessionalRequest запрос на выбор мастера
type SelectProfessionalRequest struct {
	UserID         int64 `json:"userId"`
	ProfessionalID int64 `json:"professionalId"`
}

// SubmitDetailsRequest запрос на ввод контактных данных клиента
type SubmitDetailsRequest struct {
	UserID   int64   `json:"userId"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Document string  `json:"document"`
	Email    *string `json:"email,omitempty"`
}

// Response модели

// DayItem классификация одной даты календаря
type DayItem struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Status    string `json:"status"`
	OpenSlots int    `json:"openSlots"`
}

// SlotItem открытый слот
type SlotItem struct {
	TemplateID int64  `json:"templateId"`
	Date       string `json:"date"`      // YYYY-MM-DD
	StartTime  string `json:"startTime"` // HH:MM
	EndTime    string `json:"endTime"`   // HH:MM
}

// ProfessionalItem мастер-кандидат
type ProfessionalItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SessionResponse состояние сессии бронирования
// Списки days, openSlots и professionals заполняются по мере
// продвижения мастера бронирования
type SessionResponse struct {
	ID                     string             `json:"id"`
	Step                   string             `json:"step"`
	CompanyID              int64              `json:"companyId"`
	ServiceID              int64              `json:"serviceId"`
	ServiceName            string             `json:"serviceName"`
	RequireEmail           bool               `json:"requireEmail"`
	RequiresProfessional   bool               `json:"requiresProfessional"`
	Days                   []DayItem          `json:"days,omitempty"`
	OpenSlots              []SlotItem         `json:"openSlots,omitempty"`
	Professionals          []ProfessionalItem `json:"professionals,omitempty"`
	SelectedDate           *string            `json:"selectedDate,omitempty"`
	SelectedSlot           *SlotItem          `json:"selectedSlot,omitempty"`
	SelectedProfessionalID *int64             `json:"selectedProfessionalId,omitempty"`
	DetailsSubmitted       bool               `json:"detailsSubmitted"`
	BookingID              *int64             `json:"bookingId,omitempty"`
}

// Методы конвертации

// FromDayAvailability конвертирует классификации дат в DTO
func FromDayAvailability(days []domain.DayAvailability) []DayItem {
	items := make([]DayItem, 0, len(days))
	for _, d := range days {
		items = append(items, DayItem{
			Date:      d.Date.Format(domain.DateFormat),
			Status:    string(d.Status),
			OpenSlots: d.OpenSlots,
		})
	}
	return items
}

// FromResolvedSlots конвертирует открытые слоты в DTO
func FromResolvedSlots(slots []domain.ResolvedSlot) []SlotItem {
	items := make([]SlotItem, 0, len(slots))
	for _, s := range slots {
		items = append(items, *FromResolvedSlot(&s))
	}
	return items
}

// FromResolvedSlot конвертирует один слот в DTO
func FromResolvedSlot(s *domain.ResolvedSlot) *SlotItem {
	if s == nil {
		return nil
	}
	return &SlotItem{
		TemplateID: s.TemplateID,
		Date:       s.Date.Format(domain.DateFormat),
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
	}
}

// FromProfessionals конвертирует мастеров-кандидатов в DTO
func FromProfessionals(professionals []domain.SessionProfessional) []ProfessionalItem {
	items := make([]ProfessionalItem, 0, len(professionals))
	for _, p := range professionals {
		items = append(items, ProfessionalItem{ID: p.ID, Name: p.Name})
	}
	return items
}

// FromSession собирает состояние сессии
// days, openSlots и eligible вычисляются вызывающей стороной по снапшоту
func FromSession(
	s *domain.BookingSession,
	days []domain.DayAvailability,
	openSlots []domain.ResolvedSlot,
	eligible []domain.SessionProfessional,
) *SessionResponse {
	resp := &SessionResponse{
		ID:                     s.ID,
		Step:                   string(s.Step),
		CompanyID:              s.CompanyID,
		ServiceID:              s.ServiceID,
		ServiceName:            s.ServiceName,
		RequireEmail:           s.RequireEmail,
		RequiresProfessional:   s.Config.RequiresProfessional && len(s.Professionals) > 0,
		Days:                   FromDayAvailability(days),
		OpenSlots:              FromResolvedSlots(openSlots),
		Professionals:          FromProfessionals(eligible),
		SelectedSlot:           FromResolvedSlot(s.SelectedSlot),
		SelectedProfessionalID: s.SelectedProfessionalID,
		DetailsSubmitted:       s.Details != nil,
		BookingID:              s.BookingID,
	}

	if s.SelectedDate != nil {
		date := s.SelectedDate.Format(domain.DateFormat)
		resp.SelectedDate = &date
	}

	return resp
}
