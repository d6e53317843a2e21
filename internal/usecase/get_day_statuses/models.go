package get_day_statuses

import "time"

// Request модель запроса на раскраску календаря
// From и Days опционально сужают окно: from должен попадать в окно
// бронирования, days ограничивает число дат, но не выводит за горизонт
type Request struct {
	CompanyID int64      // ID компании
	ServiceID int64      // ID услуги
	From      *time.Time // начало под-окна (по умолчанию - сегодня)
	Days      *int       // длина под-окна (по умолчанию - до конца горизонта)
}

// Response модель ответа с классификацией дат окна бронирования
type Response struct {
	CompanyID   int64 // ID компании
	ServiceID   int64 // ID услуги
	WindowStart time.Time
	HorizonDays int
	Days        []Day
}

// Day классификация одной даты
type Day struct {
	Date      time.Time
	Status    string // blocked / no_slots / low_slots / available
	OpenSlots int
}
