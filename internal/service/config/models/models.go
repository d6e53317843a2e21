package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации доступности
// Не переданные поля заполняются дефолтами движка
type UpsertConfigRequest struct {
	UserID               int64  `json:"userId"`
	CompanyID            int64  `json:"companyId"`
	ServiceID            *int64 `json:"serviceId,omitempty"` // NULL = для всех услуг компании
	HorizonDays          *int   `json:"horizonDays,omitempty"`
	LowSlotsThreshold    *int   `json:"lowSlotsThreshold,omitempty"`
	SameDayCutoffMinutes *int   `json:"sameDayCutoffMinutes,omitempty"`
	UnassignedBlocksAll  *bool  `json:"unassignedBlocksAll,omitempty"`
	RequiresProfessional *bool  `json:"requiresProfessional,omitempty"`
}

// ToDomainConfig собирает domain модель, подставляя дефолты для опущенных полей
func (r *UpsertConfigRequest) ToDomainConfig() *domain.AvailabilityConfig {
	config := domain.DefaultAvailabilityConfig()
	config.CompanyID = r.CompanyID
	config.ServiceID = r.ServiceID

	if r.HorizonDays != nil {
		config.HorizonDays = *r.HorizonDays
	}
	if r.LowSlotsThreshold != nil {
		config.LowSlotsThreshold = *r.LowSlotsThreshold
	}
	if r.SameDayCutoffMinutes != nil {
		config.SameDayCutoffMinutes = *r.SameDayCutoffMinutes
	}
	if r.UnassignedBlocksAll != nil {
		config.UnassignedBlocksAll = *r.UnassignedBlocksAll
	}
	if r.RequiresProfessional != nil {
		config.RequiresProfessional = *r.RequiresProfessional
	}

	return config
}

// Response модели

// ConfigResponse ответ с данными конфигурации доступности
type ConfigResponse struct {
	ID                   int64     `json:"id,omitempty"`
	CompanyID            int64     `json:"companyId"`
	ServiceID            *int64    `json:"serviceId,omitempty"`
	HorizonDays          int       `json:"horizonDays"`
	LowSlotsThreshold    int       `json:"lowSlotsThreshold"`
	SameDayCutoffMinutes int       `json:"sameDayCutoffMinutes"`
	UnassignedBlocksAll  bool      `json:"unassignedBlocksAll"`
	RequiresProfessional bool      `json:"requiresProfessional"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
	UpdatedAt            time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций компании
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.AvailabilityConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                   c.ID,
		CompanyID:            c.CompanyID,
		ServiceID:            c.ServiceID,
		HorizonDays:          c.HorizonDays,
		LowSlotsThreshold:    c.LowSlotsThreshold,
		SameDayCutoffMinutes: c.SameDayCutoffMinutes,
		UnassignedBlocksAll:  c.UnassignedBlocksAll,
		RequiresProfessional: c.RequiresProfessional,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.AvailabilityConfig) *ConfigListResponse {
	items := make([]ConfigResponse, 0, len(configs))
	for _, c := range configs {
		items = append(items, *FromDomainConfig(c))
	}
	return &ConfigListResponse{Configs: items}
}
