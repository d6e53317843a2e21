package get_nearest_date

import "time"

// Request модель запроса ближайшей доступной даты
// From опционально задает начало поиска внутри окна бронирования
type Request struct {
	CompanyID int64      // ID компании
	ServiceID int64      // ID услуги
	From      *time.Time // начало поиска (по умолчанию - сегодня)
}

// Response модель ответа с ближайшей доступной датой
// Found == false означает, что во всем окне бронирования нет ни одной
// незаблокированной даты
type Response struct {
	CompanyID int64
	ServiceID int64
	Found     bool
	Date      *time.Time
	Status    string
	OpenSlots int
}
