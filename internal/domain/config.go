package domain

import "time"

// AvailabilityConfig параметры движка доступности для компании
// Поддерживает иерархическую конфигурацию:
// 1. Для конкретной услуги (company_id, service_id)
// 2. Для всей компании (company_id, NULL)
type AvailabilityConfig struct {
	ID        int64
	CompanyID int64
	ServiceID *int64 // NULL = конфигурация для всех услуг компании

	// HorizonDays горизонт бронирования в днях
	HorizonDays int
	// LowSlotsThreshold порог "мало слотов": 1..N открытых слотов = low_slots
	LowSlotsThreshold int
	// SameDayCutoffMinutes отсечка для сегодняшних слотов:
	// слот скрывается, если его начало раньше now - cutoff
	SameDayCutoffMinutes int
	// UnassignedBlocksAll блокируют ли записи без мастера время всех мастеров
	UnassignedBlocksAll bool
	// RequiresProfessional требует ли услуга явного выбора мастера
	RequiresProfessional bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompanyWide проверяет, что конфигурация действует для всех услуг компании
func (c *AvailabilityConfig) IsCompanyWide() bool {
	return c.ServiceID == nil
}

// IsServiceSpecific проверяет, что конфигурация задана для конкретной услуги
func (c *AvailabilityConfig) IsServiceSpecific() bool {
	return c.ServiceID != nil
}

// DefaultAvailabilityConfig возвращает конфигурацию с дефолтными значениями
func DefaultAvailabilityConfig() *AvailabilityConfig {
	return &AvailabilityConfig{
		HorizonDays:          DefaultHorizonDays,
		LowSlotsThreshold:    DefaultLowSlotsThreshold,
		SameDayCutoffMinutes: DefaultSameDayCutoffMinutes,
		UnassignedBlocksAll:  DefaultUnassignedBlocksAll,
		RequiresProfessional: DefaultRequiresProfessional,
	}
}
