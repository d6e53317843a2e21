package timerange

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrInvalidRange возвращается, когда start >= end или время не задано
var ErrInvalidRange = errors.New("timerange: invalid range")

// Range полуоткрытый интервал времени суток [Start, End)
// Единственное место в сервисе, где сравниваются интервалы - все проверки
// занятости обязаны использовать Overlaps
type Range struct {
	Start types.TimeString
	End   types.TimeString
}

// New создает интервал с валидацией: обе границы заданы, Start строго раньше End
func New(start, end types.TimeString) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: empty bounds", ErrInvalidRange)
	}
	if err := start.Validate(); err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if err := end.Validate(); err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if !start.IsBefore(end) {
		return Range{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRange, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов
// [a.Start, a.End) пересекается с [b.Start, b.End) тогда и только тогда, когда
// a.Start < b.End && b.Start < a.End. Граничащие интервалы (10:00-11:00 и
// 11:00-12:00) НЕ пересекаются
func (r Range) Overlaps(other Range) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Contains проверяет, что момент t попадает в интервал (конец не включается)
func (r Range) Contains(t types.TimeString) bool {
	return !t.IsBefore(r.Start) && t.IsBefore(r.End)
}
