package get_open_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
func validateDate(requestDate, now time.Time, horizonDays int) error {
	requestOnly := dateOnly(requestDate)
	nowOnly := dateOnly(now)

	if requestOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	maxDate := nowOnly.AddDate(0, 0, horizonDays-1)
	if requestOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days ahead", ErrDateOutOfHorizon, horizonDays)
	}

	return nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
