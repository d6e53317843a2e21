package get_eligible_professionals

import "time"

// Request модель запроса мастеров со свободным временем на дату
type Request struct {
	CompanyID int64     // ID компании
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком мастеров
// AnyProfessional == true означает, что услуга не привязана к мастерам
// и бронируется без выбора мастера
type Response struct {
	CompanyID       int64
	ServiceID       int64
	Date            time.Time
	AnyProfessional bool
	Professionals   []Professional
}

// Professional мастер со свободным временем
type Professional struct {
	ID   int64
	Name string
}
