package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// 2026-03-02 - понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func weekdayTemplates() []*domain.ScheduleTemplate {
	return []*domain.ScheduleTemplate{
		{
			ID:        1,
			Weekdays:  domain.NewWeekdaySet(time.Monday, time.Wednesday),
			StartTime: "09:00",
			EndTime:   "10:00",
		},
		{
			ID:        2,
			Weekdays:  domain.NewWeekdaySet(time.Monday),
			StartTime: "10:00",
			EndTime:   "11:00",
		},
		{
			ID:        3,
			Weekdays:  domain.NewWeekdaySet(time.Saturday),
			StartTime: "12:00",
			EndTime:   "13:00",
		},
	}
}

func testConfig() *domain.AvailabilityConfig {
	return &domain.AvailabilityConfig{
		HorizonDays:          7,
		LowSlotsThreshold:    1,
		SameDayCutoffMinutes: 15,
		UnassignedBlocksAll:  true,
	}
}

func entry(professionalID int64, start, end types.TimeString) *domain.CalendarEntry {
	return &domain.CalendarEntry{
		CompanyID:      1,
		ServiceID:      1,
		ProfessionalID: professionalID,
		Date:           monday,
		StartTime:      start,
		EndTime:        end,
		Status:         domain.StatusBooked,
	}
}

func TestSlotsForDate(t *testing.T) {
	slots := SlotsForDate(monday, weekdayTemplates())

	require.Len(t, slots, 2)
	assert.Equal(t, int64(1), slots[0].TemplateID)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, int64(2), slots[1].TemplateID)

	// Суббота: только шаблон 3
	saturday := monday.AddDate(0, 0, 5)
	slots = SlotsForDate(saturday, weekdayTemplates())
	require.Len(t, slots, 1)
	assert.Equal(t, int64(3), slots[0].TemplateID)

	// Вторник: шаблонов нет
	assert.Empty(t, SlotsForDate(monday.AddDate(0, 0, 1), weekdayTemplates()))
}

func TestIsOccupied(t *testing.T) {
	slot := &domain.ResolvedSlot{
		TemplateID: 1,
		Date:       monday,
		StartTime:  "09:00",
		EndTime:    "10:00",
	}

	// Пересекающаяся запись занимает слот
	assert.True(t, IsOccupied(slot, []*domain.CalendarEntry{entry(0, "09:30", "10:30")}, nil, true))

	// Граничащая запись не занимает (полуоткрытые интервалы)
	assert.False(t, IsOccupied(slot, []*domain.CalendarEntry{entry(0, "10:00", "11:00")}, nil, true))

	// Запись другой даты игнорируется
	other := entry(0, "09:00", "10:00")
	other.Date = monday.AddDate(0, 0, 1)
	assert.False(t, IsOccupied(slot, []*domain.CalendarEntry{other}, nil, true))

	// Неблокирующий статус игнорируется
	cancelled := entry(0, "09:00", "10:00")
	cancelled.Status = domain.EntryStatus("cancelled")
	assert.False(t, IsOccupied(slot, []*domain.CalendarEntry{cancelled}, nil, true))
}

func TestIsOccupied_ProfessionalCut(t *testing.T) {
	slot := &domain.ResolvedSlot{
		TemplateID: 1,
		Date:       monday,
		StartTime:  "09:00",
		EndTime:    "10:00",
	}
	entries := []*domain.CalendarEntry{entry(7, "09:00", "10:00")}

	// Запись мастера 7 занимает его слот, но не слот мастера 8
	assert.True(t, IsOccupied(slot, entries, ptr.Ptr(int64(7)), true))
	assert.False(t, IsOccupied(slot, entries, ptr.Ptr(int64(8)), true))

	// Без разреза по мастеру любая блокирующая запись занимает слот
	assert.True(t, IsOccupied(slot, entries, nil, true))

	// Запись без мастера: поведение зависит от политики
	unassigned := []*domain.CalendarEntry{entry(domain.UnassignedProfessionalID, "09:00", "10:00")}
	assert.True(t, IsOccupied(slot, unassigned, ptr.Ptr(int64(7)), true))
	assert.False(t, IsOccupied(slot, unassigned, ptr.Ptr(int64(7)), false))
}

func TestOpenSlots(t *testing.T) {
	now := monday.AddDate(0, 0, -3) // за несколько дней до даты, отсечка не действует
	cfg := testConfig()

	open := OpenSlots(monday, weekdayTemplates(), nil, nil, now, cfg)
	require.Len(t, open, 2)

	// Занятый слот выпадает
	open = OpenSlots(monday, weekdayTemplates(), []*domain.CalendarEntry{entry(0, "09:00", "10:00")}, nil, now, cfg)
	require.Len(t, open, 1)
	assert.Equal(t, types.TimeString("10:00"), open[0].StartTime)
}

func TestOpenSlots_SameDayCutoff(t *testing.T) {
	cfg := testConfig() // cutoff 15 минут

	// now = 09:50, отсечка = 09:35: слот 09:00 скрыт, 10:00 остается
	now := time.Date(2026, 3, 2, 9, 50, 0, 0, time.UTC)
	open := OpenSlots(monday, weekdayTemplates(), nil, nil, now, cfg)
	require.Len(t, open, 1)
	assert.Equal(t, types.TimeString("10:00"), open[0].StartTime)

	// now = 09:10, отсечка = 08:55: оба слота видны
	now = time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)
	open = OpenSlots(monday, weekdayTemplates(), nil, nil, now, cfg)
	assert.Len(t, open, 2)

	// На другую дату отсечка не действует
	now = time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	open = OpenSlots(monday, weekdayTemplates(), nil, nil, now, cfg)
	assert.Len(t, open, 2)
}
