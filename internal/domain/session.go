package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SessionStep шаг мастера бронирования
type SessionStep string

const (
	// StepSelectDate выбор даты в календаре
	StepSelectDate SessionStep = "select_date"
	// StepSelectTime выбор времени на выбранную дату
	StepSelectTime SessionStep = "select_time"
	// StepEnterDetails ввод контактных данных клиента
	StepEnterDetails SessionStep = "enter_details"
	// StepCompleted бронирование подтверждено, сессия завершена
	StepCompleted SessionStep = "completed"
	// StepCancelled сессия отменена пользователем
	StepCancelled SessionStep = "cancelled"
)

// IsTerminal проверяет, что шаг финальный и сессия больше не мутируется
func (s SessionStep) IsTerminal() bool {
	return s == StepCompleted || s == StepCancelled
}

// ClientDetails контактные данные клиента, введенные на шаге enter_details
type ClientDetails struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Document string  `json:"document"`
	Email    *string `json:"email,omitempty"`
}

// SessionProfessional мастер-кандидат, снятый со StaffService при открытии сессии
type SessionProfessional struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ExcludedSlot слот, проигравший гонку на шаге подтверждения
// Исключается из выдачи открытых слотов до конца жизни сессии
type ExcludedSlot struct {
	Date      string           `json:"date"` // YYYY-MM-DD
	StartTime types.TimeString `json:"start_time"`
}

// BookingSession сессия мастера бронирования
// Сериализуется в JSON целиком и живет в Redis с TTL. Снапшот шаблонов,
// занятости и конфигурации снимается один раз при открытии; свежесть
// проверяется точечными перечитываниями на шагах select_time и confirm
type BookingSession struct {
	ID        string      `json:"id"`
	UserID    int64       `json:"user_id"`
	CompanyID int64       `json:"company_id"`
	ServiceID int64       `json:"service_id"`
	Step      SessionStep `json:"step"`

	// Снапшот, снятый при открытии сессии
	WindowStart   time.Time             `json:"window_start"`
	Templates     []*ScheduleTemplate   `json:"templates"`
	Entries       []*CalendarEntry      `json:"entries"`
	Config        *AvailabilityConfig   `json:"config"`
	Professionals []SessionProfessional `json:"professionals"`
	ServiceName   string                `json:"service_name"`
	RequireEmail  bool                  `json:"require_email"`

	// Прогресс мастера
	SelectedDate           *time.Time     `json:"selected_date,omitempty"`
	SelectedSlot           *ResolvedSlot  `json:"selected_slot,omitempty"`
	SelectedProfessionalID *int64         `json:"selected_professional_id,omitempty"`
	Details                *ClientDetails `json:"details,omitempty"`
	ExcludedSlots          []ExcludedSlot `json:"excluded_slots,omitempty"`
	BookingID              *int64         `json:"booking_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WindowEnd последняя дата окна бронирования (включительно)
func (s *BookingSession) WindowEnd() time.Time {
	return s.WindowStart.AddDate(0, 0, s.Config.HorizonDays-1)
}

// InWindow проверяет, что дата попадает в окно бронирования сессии
func (s *BookingSession) InWindow(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(s.WindowStart.Year(), s.WindowStart.Month(), s.WindowStart.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(start.AddDate(0, 0, s.Config.HorizonDays-1))
}

// IsExcluded проверяет, исключен ли слот после проигранной гонки
func (s *BookingSession) IsExcluded(date time.Time, start types.TimeString) bool {
	key := date.Format(DateFormat)
	for _, ex := range s.ExcludedSlots {
		if ex.Date == key && ex.StartTime == start {
			return true
		}
	}
	return false
}

// Exclude помечает слот проигравшим гонку
func (s *BookingSession) Exclude(date time.Time, start types.TimeString) {
	if s.IsExcluded(date, start) {
		return
	}
	s.ExcludedSlots = append(s.ExcludedSlots, ExcludedSlot{
		Date:      date.Format(DateFormat),
		StartTime: start,
	})
}

// ReplaceEntriesForDate заменяет в снапшоте записи одной даты свежими
// Используется freshness-перечитываниями шагов select_time и confirm
func (s *BookingSession) ReplaceEntriesForDate(date time.Time, fresh []*CalendarEntry) {
	y, m, d := date.Date()

	kept := make([]*CalendarEntry, 0, len(s.Entries)+len(fresh))
	for _, e := range s.Entries {
		ey, em, ed := e.Date.Date()
		if ey == y && em == m && ed == d {
			continue
		}
		kept = append(kept, e)
	}

	s.Entries = append(kept, fresh...)
}

// HasProfessional проверяет, что мастер входит в список кандидатов сессии
func (s *BookingSession) HasProfessional(professionalID int64) bool {
	for _, p := range s.Professionals {
		if p.ID == professionalID {
			return true
		}
	}
	return false
}
