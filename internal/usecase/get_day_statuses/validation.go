package get_day_statuses

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

	if req.Days != nil && *req.Days <= 0 {
		return fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	return nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween число полных суток между двумя датами (обе без времени)
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
