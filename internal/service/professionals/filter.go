package professionals

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// Eligible фильтрует кандидатов, оставляя мастеров со свободным временем
// на дату. Пустой список кандидатов означает, что услуга не привязана
// к мастерам - фильтр в этом случае ничего не делает
func Eligible(
	date time.Time,
	candidates []domain.SessionProfessional,
	templates []*domain.ScheduleTemplate,
	entries []*domain.CalendarEntry,
	now time.Time,
	cfg *domain.AvailabilityConfig,
) []domain.SessionProfessional {
	if len(candidates) == 0 {
		return candidates
	}

	eligible := make([]domain.SessionProfessional, 0, len(candidates))
	for _, p := range candidates {
		professionalID := p.ID
		open := availability.OpenSlots(date, templates, entries, &professionalID, now, cfg)
		if len(open) > 0 {
			eligible = append(eligible, p)
		}
	}

	return eligible
}

// HasOpenSlot проверяет, свободен ли конкретный слот для конкретного мастера
func HasOpenSlot(
	slot *domain.ResolvedSlot,
	entries []*domain.CalendarEntry,
	professionalID int64,
	cfg *domain.AvailabilityConfig,
) bool {
	return !availability.IsOccupied(slot, entries, &professionalID, cfg.UnassignedBlocksAll)
}
