package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"company_id",
	"service_id",
	"horizon_days",
	"low_slots_threshold",
	"same_day_cutoff_minutes",
	"unassigned_blocks_all",
	"requires_professional",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации доступности (таблица availability_config)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCompanyAndService получает конфигурацию для компании и услуги
// serviceID == nil означает конфигурацию уровня компании (service_id IS NULL)
func (r *Repository) GetByCompanyAndService(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("availability_config").
		Where(squirrel.Eq{"company_id": companyID})

	// Фильтрация по service_id (NULL или конкретное значение)
	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndService - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanConfig(executor.QueryRowContext(ctx, query, args...), "GetByCompanyAndService")
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения:
// 1. Конфигурация для конкретной услуги (company_id, service_id)
// 2. Конфигурация уровня компании (company_id, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error) {
	// 1. Пробуем получить конфигурацию для конкретной услуги
	if serviceID != nil {
		config, err := r.GetByCompanyAndService(ctx, companyID, serviceID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - service level: %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить конфигурацию уровня компании
	config, err := r.GetByCompanyAndService(ctx, companyID, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - company level: %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByCompany получает все конфигурации компании
// Конфигурация уровня компании возвращается первой
func (r *Repository) GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.AvailabilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("availability_config").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("service_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.AvailabilityConfig, 0)

	for rows.Next() {
		var config domain.AvailabilityConfig
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&config.ID,
			&config.CompanyID,
			&config.ServiceID,
			&config.HorizonDays,
			&config.LowSlotsThreshold,
			&config.SameDayCutoffMinutes,
			&config.UnassignedBlocksAll,
			&config.RequiresProfessional,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByCompany - scan row: %v", ErrScanRow, err)
		}

		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time

		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию для (company_id, service_id)
// Используется staff-инструментарием через PUT availability-config
func (r *Repository) Upsert(ctx context.Context, config *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_config").
		Columns(
			"company_id",
			"service_id",
			"horizon_days",
			"low_slots_threshold",
			"same_day_cutoff_minutes",
			"unassigned_blocks_all",
			"requires_professional",
		).
		Values(
			config.CompanyID,
			config.ServiceID,
			config.HorizonDays,
			config.LowSlotsThreshold,
			config.SameDayCutoffMinutes,
			config.UnassignedBlocksAll,
			config.RequiresProfessional,
		).
		Suffix(`ON CONFLICT (company_id, COALESCE(service_id, 0)) DO UPDATE SET
			horizon_days = EXCLUDED.horizon_days,
			low_slots_threshold = EXCLUDED.low_slots_threshold,
			same_day_cutoff_minutes = EXCLUDED.same_day_cutoff_minutes,
			unassigned_blocks_all = EXCLUDED.unassigned_blocks_all,
			requires_professional = EXCLUDED.requires_professional,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// scanConfig сканирует одну строку конфигурации
func (r *Repository) scanConfig(row *sql.Row, op string) (*domain.AvailabilityConfig, error) {
	var config domain.AvailabilityConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.CompanyID,
		&config.ServiceID,
		&config.HorizonDays,
		&config.LowSlotsThreshold,
		&config.SameDayCutoffMinutes,
		&config.UnassignedBlocksAll,
		&config.RequiresProfessional,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan config: %v", ErrScanRow, op, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
