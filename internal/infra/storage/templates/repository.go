package templates

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var templateColumns = []string{
	"id",
	"company_id",
	"service_id",
	"weekdays",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository read-only репозиторий шаблонов расписания (таблица schedule_templates)
// Шаблоны создаются и редактируются staff-инструментами вне этого сервиса,
// поэтому здесь только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCompanyAndService получает все шаблоны расписания услуги
// Шаблонов может быть несколько (например, утренний и вечерний блоки)
func (r *Repository) GetByCompanyAndService(ctx context.Context, companyID, serviceID int64) ([]*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("schedule_templates").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTemplates(rows)
}

// GetByID получает шаблон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("schedule_templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var template domain.ScheduleTemplate
	var weekdays int16
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&template.ID,
		&template.CompanyID,
		&template.ServiceID,
		&weekdays,
		&template.StartTime,
		&template.EndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %v", ErrScanRow, err)
	}

	template.Weekdays = domain.WeekdaySet(weekdays)
	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return &template, nil
}

// scanTemplates сканирует результаты запроса в слайс шаблонов
func (r *Repository) scanTemplates(rows *sql.Rows) ([]*domain.ScheduleTemplate, error) {
	result := make([]*domain.ScheduleTemplate, 0)

	for rows.Next() {
		var template domain.ScheduleTemplate
		var weekdays int16
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&template.ID,
			&template.CompanyID,
			&template.ServiceID,
			&weekdays,
			&template.StartTime,
			&template.EndTime,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}

		template.Weekdays = domain.WeekdaySet(weekdays)
		template.CreatedAt = createdAt.Time
		template.UpdatedAt = updatedAt.Time

		result = append(result, &template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
