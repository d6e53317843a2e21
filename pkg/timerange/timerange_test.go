package timerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestNew(t *testing.T) {
	r, err := New("10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), r.Start)
	assert.Equal(t, types.TimeString("11:00"), r.End)

	_, err = New("11:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New("10:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New("", "10:00")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRange_Overlaps(t *testing.T) {
	mustRange := func(start, end types.TimeString) Range {
		r, err := New(start, end)
		require.NoError(t, err)
		return r
	}

	a := mustRange("10:00", "11:00")

	// Частичное пересечение
	assert.True(t, a.Overlaps(mustRange("10:30", "11:30")))
	assert.True(t, a.Overlaps(mustRange("09:30", "10:30")))

	// Вложенность
	assert.True(t, a.Overlaps(mustRange("10:15", "10:45")))
	assert.True(t, a.Overlaps(mustRange("09:00", "12:00")))

	// Граничащие интервалы не пересекаются (полуоткрытая семантика)
	assert.False(t, a.Overlaps(mustRange("11:00", "12:00")))
	assert.False(t, a.Overlaps(mustRange("09:00", "10:00")))

	// Не соприкасаются вовсе
	assert.False(t, a.Overlaps(mustRange("12:00", "13:00")))
}

func TestRange_Contains(t *testing.T) {
	r, err := New("10:00", "11:00")
	require.NoError(t, err)

	assert.True(t, r.Contains("10:00"))
	assert.True(t, r.Contains("10:59"))
	assert.False(t, r.Contains("11:00")) // конец не включается
	assert.False(t, r.Contains("09:59"))
}
