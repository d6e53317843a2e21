package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/timerange"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// EntryStatus статус записи календаря
type EntryStatus string

const (
	// StatusBooked подтвержденная запись
	StatusBooked EntryStatus = "booked"
	// StatusRequested запрошенная, но еще не подтвержденная запись
	// Занимает слот так же, как booked - консервативная политика
	StatusRequested EntryStatus = "requested"
)

// UnassignedProfessionalID сентинел "без мастера"
// Запись без назначенного мастера по умолчанию блокирует слот для всех мастеров
// (политика настраивается через AvailabilityConfig.UnassignedBlocksAll)
const UnassignedProfessionalID int64 = 0

// CalendarEntry одна заявка на конкретный интервал календаря
// Создается при подтверждении бронирования и этим движком не мутируется:
// отмена и смена статуса - внешние операции
type CalendarEntry struct {
	ID             int64
	CompanyID      int64
	ServiceID      int64
	ProfessionalID int64 // UnassignedProfessionalID = без мастера
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         EntryStatus

	// Денормализованные контактные данные клиента
	ClientName     string
	ClientPhone    string
	ClientDocument string
	ClientEmail    *string

	CreatedAt time.Time
}

// IsBlocking проверяет, занимает ли запись слот (booked или requested)
func (e *CalendarEntry) IsBlocking() bool {
	return e.Status == StatusBooked || e.Status == StatusRequested
}

// BlocksProfessional проверяет, занимает ли запись время указанного мастера
// Запись без мастера блокирует всех только при unassignedBlocksAll
func (e *CalendarEntry) BlocksProfessional(professionalID int64, unassignedBlocksAll bool) bool {
	if !e.IsBlocking() {
		return false
	}
	if e.ProfessionalID == professionalID {
		return true
	}
	if e.ProfessionalID == UnassignedProfessionalID {
		return unassignedBlocksAll
	}
	return false
}

// Interval возвращает интервал записи
func (e *CalendarEntry) Interval() (timerange.Range, error) {
	return timerange.New(e.StartTime, e.EndTime)
}

// BlockingStatuses статусы, занимающие слоты
// Используется при фильтрации записей в запросах к БД
var BlockingStatuses = []EntryStatus{
	StatusBooked,
	StatusRequested,
}
