package professionals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// 2026-03-02 - понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func testConfig() *domain.AvailabilityConfig {
	return &domain.AvailabilityConfig{
		HorizonDays:          7,
		LowSlotsThreshold:    1,
		SameDayCutoffMinutes: 15,
		UnassignedBlocksAll:  true,
	}
}

func mondayTemplates() []*domain.ScheduleTemplate {
	return []*domain.ScheduleTemplate{
		{
			ID:        1,
			Weekdays:  domain.NewWeekdaySet(time.Monday),
			StartTime: "09:00",
			EndTime:   "10:00",
		},
	}
}

func bookedEntry(professionalID int64, start, end types.TimeString) *domain.CalendarEntry {
	return &domain.CalendarEntry{
		ProfessionalID: professionalID,
		Date:           monday,
		StartTime:      start,
		EndTime:        end,
		Status:         domain.StatusBooked,
	}
}

func TestEligible(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	candidates := []domain.SessionProfessional{
		{ID: 1, Name: "Анна"},
		{ID: 2, Name: "Борис"},
	}

	// Единственный слот занят мастером 1: остается только мастер 2
	entries := []*domain.CalendarEntry{bookedEntry(1, "09:00", "10:00")}
	eligible := Eligible(monday, candidates, mondayTemplates(), entries, now, testConfig())
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(2), eligible[0].ID)

	// Без записей доступны оба
	eligible = Eligible(monday, candidates, mondayTemplates(), nil, now, testConfig())
	assert.Len(t, eligible, 2)

	// Запись без мастера при unassignedBlocksAll выбивает всех
	entries = []*domain.CalendarEntry{bookedEntry(domain.UnassignedProfessionalID, "09:00", "10:00")}
	eligible = Eligible(monday, candidates, mondayTemplates(), entries, now, testConfig())
	assert.Empty(t, eligible)

	// ... а при выключенной политике не мешает никому
	cfg := testConfig()
	cfg.UnassignedBlocksAll = false
	eligible = Eligible(monday, candidates, mondayTemplates(), entries, now, cfg)
	assert.Len(t, eligible, 2)
}

func TestEligible_NoCandidates(t *testing.T) {
	now := monday.AddDate(0, 0, -3)

	// Услуга без мастеров: фильтр возвращает пустой список как есть
	eligible := Eligible(monday, nil, mondayTemplates(), nil, now, testConfig())
	assert.Empty(t, eligible)
}

func TestHasOpenSlot(t *testing.T) {
	slot := &domain.ResolvedSlot{
		TemplateID: 1,
		Date:       monday,
		StartTime:  "09:00",
		EndTime:    "10:00",
	}

	entries := []*domain.CalendarEntry{bookedEntry(1, "09:00", "10:00")}

	assert.False(t, HasOpenSlot(slot, entries, 1, testConfig()))
	assert.True(t, HasOpenSlot(slot, entries, 2, testConfig()))
}
