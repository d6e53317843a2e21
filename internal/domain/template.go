package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WeekdaySet набор дней недели в виде битовой маски
// Бит 0 - понедельник, бит 6 - воскресенье. Хранится в БД одним числом
type WeekdaySet uint8

// NewWeekdaySet создает набор из перечисленных дней недели
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var set WeekdaySet
	for _, d := range days {
		set |= weekdayBit(d)
	}
	return set
}

// Contains проверяет, входит ли день недели в набор
func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s&weekdayBit(day) != 0
}

// IsEmpty проверяет, что набор пуст
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Weekdays возвращает дни набора в порядке с понедельника
func (s WeekdaySet) Weekdays() []time.Weekday {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	days := make([]time.Weekday, 0, 7)
	for _, d := range order {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// weekdayBit возвращает бит маски для дня недели (понедельник = бит 0)
func weekdayBit(day time.Weekday) WeekdaySet {
	// time.Sunday == 0, сдвигаем так, чтобы неделя начиналась с понедельника
	idx := (int(day) + 6) % 7
	return WeekdaySet(1 << idx)
}

// ScheduleTemplate повторяющееся недельное окно доступности услуги
// Создается и редактируется внешним staff-инструментарием, для движка read-only
type ScheduleTemplate struct {
	ID        int64
	CompanyID int64
	ServiceID int64
	Weekdays  WeekdaySet
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo проверяет, действует ли шаблон в указанный день недели
func (t *ScheduleTemplate) AppliesTo(day time.Weekday) bool {
	return t.Weekdays.Contains(day)
}

// IsValid проверяет базовые инварианты шаблона: непустой набор дней, start < end
func (t *ScheduleTemplate) IsValid() bool {
	if t.Weekdays.IsEmpty() {
		return false
	}
	if t.StartTime.Validate() != nil || t.EndTime.Validate() != nil {
		return false
	}
	return t.StartTime.IsBefore(t.EndTime)
}
