package staffservice

// Company модель компании из StaffService
type Company struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Timezone   string  `json:"timezone"`
	ManagerIDs []int64 `json:"manager_ids"`
	IsActive   bool    `json:"is_active"`
}

// Service модель услуги из StaffService
type Service struct {
	ID              int64   `json:"id"`
	CompanyID       int64   `json:"company_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool    `json:"is_active"`
}

// Professional модель мастера из StaffService
type Professional struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
