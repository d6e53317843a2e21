package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/timerange"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ResolvedSlot окно шаблона, спроецированное на конкретную дату
// Вычисляемая модель, в БД не хранится
type ResolvedSlot struct {
	TemplateID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Occupied   bool
}

// Interval возвращает интервал слота
func (s *ResolvedSlot) Interval() (timerange.Range, error) {
	return timerange.New(s.StartTime, s.EndTime)
}

// DayStatus агрегированная классификация доступности даты
type DayStatus string

const (
	// DayBlocked на этот день недели нет ни одного шаблона
	DayBlocked DayStatus = "blocked"
	// DayNoSlots шаблоны есть, но все слоты заняты
	DayNoSlots DayStatus = "no_slots"
	// DayLowSlots открыто от 1 до LowSlotsThreshold слотов
	DayLowSlots DayStatus = "low_slots"
	// DayAvailable открыто больше LowSlotsThreshold слотов
	DayAvailable DayStatus = "available"
)

// DayAvailability классификация одной даты календаря
// Вычисляемая модель для раскраски календаря, в БД не хранится
type DayAvailability struct {
	Date      time.Time
	Status    DayStatus
	OpenSlots int
}

// IsBookable проверяет, можно ли переходить к выбору времени на этой дате
func (d *DayAvailability) IsBookable() bool {
	return d.Status != DayBlocked
}
