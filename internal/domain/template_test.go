package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdaySet(t *testing.T) {
	set := NewWeekdaySet(time.Monday, time.Wednesday, time.Sunday)

	assert.True(t, set.Contains(time.Monday))
	assert.True(t, set.Contains(time.Wednesday))
	assert.True(t, set.Contains(time.Sunday))
	assert.False(t, set.Contains(time.Tuesday))
	assert.False(t, set.Contains(time.Saturday))

	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Sunday}, set.Weekdays())
	assert.False(t, set.IsEmpty())
	assert.True(t, NewWeekdaySet().IsEmpty())
}

func TestWeekdaySet_MaskLayout(t *testing.T) {
	// Понедельник - бит 0, воскресенье - бит 6
	assert.Equal(t, WeekdaySet(1), NewWeekdaySet(time.Monday))
	assert.Equal(t, WeekdaySet(1<<6), NewWeekdaySet(time.Sunday))
}

func TestScheduleTemplate_AppliesTo(t *testing.T) {
	tpl := &ScheduleTemplate{
		Weekdays:  NewWeekdaySet(time.Monday, time.Friday),
		StartTime: "10:00",
		EndTime:   "11:00",
	}

	assert.True(t, tpl.AppliesTo(time.Monday))
	assert.True(t, tpl.AppliesTo(time.Friday))
	assert.False(t, tpl.AppliesTo(time.Saturday))
}

func TestScheduleTemplate_IsValid(t *testing.T) {
	valid := &ScheduleTemplate{
		Weekdays:  NewWeekdaySet(time.Monday),
		StartTime: "10:00",
		EndTime:   "11:00",
	}
	assert.True(t, valid.IsValid())

	noDays := &ScheduleTemplate{StartTime: "10:00", EndTime: "11:00"}
	assert.False(t, noDays.IsValid())

	inverted := &ScheduleTemplate{
		Weekdays:  NewWeekdaySet(time.Monday),
		StartTime: "11:00",
		EndTime:   "10:00",
	}
	assert.False(t, inverted.IsValid())

	badTime := &ScheduleTemplate{
		Weekdays:  NewWeekdaySet(time.Monday),
		StartTime: "10",
		EndTime:   "11:00",
	}
	assert.False(t, badTime.IsValid())
}
