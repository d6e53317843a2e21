package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DayStatusFor классифицирует одну дату календаря
// blocked - на этот день недели нет ни одного шаблона;
// no_slots - шаблоны есть, но все слоты заняты или отсечены;
// low_slots - открыто от 1 до LowSlotsThreshold слотов;
// available - открыто больше порога.
// Статус считается без разреза по мастерам
func DayStatusFor(
	date time.Time,
	templates []*domain.ScheduleTemplate,
	entries []*domain.CalendarEntry,
	now time.Time,
	cfg *domain.AvailabilityConfig,
) domain.DayAvailability {
	if len(SlotsForDate(date, templates)) == 0 {
		return domain.DayAvailability{
			Date:   dateOnly(date),
			Status: domain.DayBlocked,
		}
	}

	open := len(OpenSlots(date, templates, entries, nil, now, cfg))

	status := domain.DayAvailable
	switch {
	case open == 0:
		status = domain.DayNoSlots
	case open <= cfg.LowSlotsThreshold:
		status = domain.DayLowSlots
	}

	return domain.DayAvailability{
		Date:      dateOnly(date),
		Status:    status,
		OpenSlots: open,
	}
}

// DayStatuses классифицирует окно дат от from на horizonDays вперед
// Записи за все окно передаются одним срезом - фильтрация по дате
// происходит внутри IsOccupied
func DayStatuses(
	from time.Time,
	templates []*domain.ScheduleTemplate,
	entries []*domain.CalendarEntry,
	now time.Time,
	cfg *domain.AvailabilityConfig,
) []domain.DayAvailability {
	days := make([]domain.DayAvailability, 0, cfg.HorizonDays)
	for i := 0; i < cfg.HorizonDays; i++ {
		date := dateOnly(from).AddDate(0, 0, i)
		days = append(days, DayStatusFor(date, templates, entries, now, cfg))
	}

	return days
}

// NearestBookableDate ищет первую дату окна со статусом не-blocked
// Возвращает nil, если во всем горизонте таких дат нет
func NearestBookableDate(
	from time.Time,
	templates []*domain.ScheduleTemplate,
	entries []*domain.CalendarEntry,
	now time.Time,
	cfg *domain.AvailabilityConfig,
) *domain.DayAvailability {
	for i := 0; i < cfg.HorizonDays; i++ {
		date := dateOnly(from).AddDate(0, 0, i)
		day := DayStatusFor(date, templates, entries, now, cfg)
		if day.IsBookable() {
			return &day
		}
	}

	return nil
}
