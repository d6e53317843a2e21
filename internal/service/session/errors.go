package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrAccessDenied возвращается при обращении к чужой сессии
	ErrAccessDenied = errors.New("access denied")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrProfessionalNotFound возвращается, когда мастер не входит в кандидаты сессии
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrInvalidTransition возвращается при операции, недопустимой на текущем шаге
	ErrInvalidTransition = errors.New("operation is not allowed at current step")

	// ErrDateNotBookable возвращается при выборе заблокированной даты или даты вне окна
	ErrDateNotBookable = errors.New("date is not bookable")

	// ErrSlotUnavailable возвращается при выборе занятого или исключенного слота
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrSlotConflict возвращается, когда слот занят конкурентным бронированием
	// на шаге подтверждения. Сессия откатывается на выбор времени
	ErrSlotConflict = errors.New("slot was taken by a concurrent booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// ValidationError ошибка валидации конкретного поля
// Разворачивается в ErrInvalidInput для обработки на уровне API
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
