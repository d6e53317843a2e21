package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestDayStatusFor(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	cfg := testConfig() // LowSlotsThreshold = 1

	// Понедельник: 2 открытых слота > порога
	day := DayStatusFor(monday, weekdayTemplates(), nil, now, cfg)
	assert.Equal(t, domain.DayAvailable, day.Status)
	assert.Equal(t, 2, day.OpenSlots)

	// Один слот занят: остался 1 <= порога
	day = DayStatusFor(monday, weekdayTemplates(), []*domain.CalendarEntry{entry(0, "09:00", "10:00")}, now, cfg)
	assert.Equal(t, domain.DayLowSlots, day.Status)
	assert.Equal(t, 1, day.OpenSlots)

	// Оба слота заняты
	entries := []*domain.CalendarEntry{
		entry(0, "09:00", "10:00"),
		entry(0, "10:00", "11:00"),
	}
	day = DayStatusFor(monday, weekdayTemplates(), entries, now, cfg)
	assert.Equal(t, domain.DayNoSlots, day.Status)
	assert.Equal(t, 0, day.OpenSlots)

	// Вторник: шаблонов нет вовсе
	day = DayStatusFor(monday.AddDate(0, 0, 1), weekdayTemplates(), nil, now, cfg)
	assert.Equal(t, domain.DayBlocked, day.Status)
	assert.False(t, day.IsBookable())
}

func TestDayStatuses(t *testing.T) {
	now := monday.AddDate(0, 0, -3)
	cfg := testConfig()

	days := DayStatuses(monday, weekdayTemplates(), nil, now, cfg)
	require.Len(t, days, cfg.HorizonDays)

	// Пн available, вт-пт без шаблонов кроме среды, сб с одним слотом
	assert.Equal(t, domain.DayAvailable, days[0].Status) // пн: 2 слота
	assert.Equal(t, domain.DayBlocked, days[1].Status)   // вт
	assert.Equal(t, domain.DayLowSlots, days[2].Status)  // ср: 1 слот
	assert.Equal(t, domain.DayBlocked, days[3].Status)   // чт
	assert.Equal(t, domain.DayBlocked, days[4].Status)   // пт
	assert.Equal(t, domain.DayLowSlots, days[5].Status)  // сб: 1 слот
	assert.Equal(t, domain.DayBlocked, days[6].Status)   // вс

	assert.Equal(t, monday, days[0].Date)
	assert.Equal(t, monday.AddDate(0, 0, 6), days[6].Date)
}

func TestNearestBookableDate(t *testing.T) {
	cfg := testConfig()

	// С вторника ближайшая небlocked дата - среда
	tuesday := monday.AddDate(0, 0, 1)
	now := tuesday
	day := NearestBookableDate(tuesday, weekdayTemplates(), nil, now, cfg)
	require.NotNil(t, day)
	assert.Equal(t, monday.AddDate(0, 0, 2), day.Date)
	assert.Equal(t, domain.DayLowSlots, day.Status)

	// Без шаблонов ближайшей даты нет
	day = NearestBookableDate(tuesday, nil, nil, now, cfg)
	assert.Nil(t, day)
}

func TestNearestBookableDate_FullyBookedDayStillReturned(t *testing.T) {
	cfg := testConfig()
	now := monday.AddDate(0, 0, -3)

	// Полностью занятый день не blocked - он и есть ближайшая дата
	entries := []*domain.CalendarEntry{
		entry(0, "09:00", "10:00"),
		entry(0, "10:00", "11:00"),
	}
	day := NearestBookableDate(monday, weekdayTemplates(), entries, now, cfg)
	require.NotNil(t, day)
	assert.Equal(t, monday, day.Date)
	assert.Equal(t, domain.DayNoSlots, day.Status)
}
