package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Резолвер доступности - чистые функции над (дата, шаблоны, записи, now, конфиг).
// Текущее время всегда передается параметром (идиома TimeProvider),
// внутри этих функций wall clock не читается

// SlotsForDate проецирует шаблоны расписания на конкретную дату
// Возвращает слот для каждого шаблона, чей набор дней недели содержит
// день недели даты. Занятость на этом шаге не учитывается
func SlotsForDate(date time.Time, templates []*domain.ScheduleTemplate) []domain.ResolvedSlot {
	weekday := date.Weekday()

	slots := make([]domain.ResolvedSlot, 0)
	for _, t := range templates {
		if !t.AppliesTo(weekday) {
			continue
		}
		slots = append(slots, domain.ResolvedSlot{
			TemplateID: t.ID,
			Date:       dateOnly(date),
			StartTime:  t.StartTime,
			EndTime:    t.EndTime,
		})
	}

	return slots
}

// IsOccupied проверяет, пересекается ли слот хотя бы с одной записью календаря
// Если professionalID задан, учитываются только записи этого мастера плюс
// записи без мастера (сентинел) при unassignedBlocksAll.
// Все сравнения интервалов делаются через timerange.Overlaps
func IsOccupied(
	slot *domain.ResolvedSlot,
	entries []*domain.CalendarEntry,
	professionalID *int64,
	unassignedBlocksAll bool,
) bool {
	slotRange, err := slot.Interval()
	if err != nil {
		// Слот с некорректным интервалом не может быть занят
		return false
	}

	for _, entry := range entries {
		if !entry.IsBlocking() {
			continue
		}
		if !isSameDay(entry.Date, slot.Date) {
			continue
		}

		// Разрез по мастеру: чужие записи не занимают слот
		if professionalID != nil && !entry.BlocksProfessional(*professionalID, unassignedBlocksAll) {
			continue
		}

		entryRange, err := entry.Interval()
		if err != nil {
			continue
		}

		if slotRange.Overlaps(entryRange) {
			return true
		}
	}

	return false
}

// OpenSlots возвращает открытые слоты даты: спроецированные шаблоны без
// пересечений с записями календаря. Для сегодняшней даты дополнительно
// действует отсечка: слот с началом раньше now - cutoff скрывается
// независимо от занятости
func OpenSlots(
	date time.Time,
	templates []*domain.ScheduleTemplate,
	entries []*domain.CalendarEntry,
	professionalID *int64,
	now time.Time,
	cfg *domain.AvailabilityConfig,
) []domain.ResolvedSlot {
	candidates := SlotsForDate(date, templates)
	if len(candidates) == 0 {
		return candidates
	}

	cutoff, applyCutoff := sameDayCutoff(date, now, cfg.SameDayCutoffMinutes)

	open := make([]domain.ResolvedSlot, 0, len(candidates))
	for _, slot := range candidates {
		if applyCutoff && slot.StartTime.IsBefore(cutoff) {
			continue
		}
		if IsOccupied(&slot, entries, professionalID, cfg.UnassignedBlocksAll) {
			continue
		}
		open = append(open, slot)
	}

	return open
}

// sameDayCutoff возвращает минимально допустимое время начала слота на сегодня
// Для не-сегодняшних дат отсечки нет
func sameDayCutoff(date, now time.Time, cutoffMinutes int) (types.TimeString, bool) {
	if !isSameDay(date, now) {
		return "", false
	}

	current := types.NewTimeString(now)
	cutoff, err := current.AddMinutes(-cutoffMinutes)
	if err != nil {
		// AddMinutes с отрицательным сдвигом обрезается до "00:00" и не ошибается,
		// сюда можно попасть только с некорректным now
		return "", false
	}

	return cutoff, true
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
