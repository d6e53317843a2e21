package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalendarEntry_IsBlocking(t *testing.T) {
	assert.True(t, (&CalendarEntry{Status: StatusBooked}).IsBlocking())
	assert.True(t, (&CalendarEntry{Status: StatusRequested}).IsBlocking())
	assert.False(t, (&CalendarEntry{Status: EntryStatus("cancelled")}).IsBlocking())
}

func TestCalendarEntry_BlocksProfessional(t *testing.T) {
	own := &CalendarEntry{Status: StatusBooked, ProfessionalID: 7}
	assert.True(t, own.BlocksProfessional(7, false))
	assert.False(t, own.BlocksProfessional(8, false))
	assert.False(t, own.BlocksProfessional(8, true))

	// Запись без мастера блокирует всех только при unassignedBlocksAll
	unassigned := &CalendarEntry{Status: StatusBooked, ProfessionalID: UnassignedProfessionalID}
	assert.True(t, unassigned.BlocksProfessional(7, true))
	assert.False(t, unassigned.BlocksProfessional(7, false))

	nonBlocking := &CalendarEntry{Status: EntryStatus("cancelled"), ProfessionalID: 7}
	assert.False(t, nonBlocking.BlocksProfessional(7, true))
}
