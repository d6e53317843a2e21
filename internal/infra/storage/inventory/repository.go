package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"company_id",
	"service_id",
	"professional_id",
	"entry_date",
	"start_time",
	"end_time",
	"status",
	"client_name",
	"client_phone",
	"client_document",
	"client_email",
	"created_at",
}

// Repository репозиторий инвентаря календаря (таблица calendar_entries)
// Записи append-only: движок их создает и читает, но никогда не мутирует -
// отмена и смена статуса выполняются внешними инструментами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инвентаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет новую запись календаря
// Уникальность на этом уровне не проверяется - вызывающая сторона обязана
// проверить доступность слота до вставки (в Confirming это делается в одной
// сериализуемой транзакции с этой вставкой)
func (r *Repository) Create(ctx context.Context, entry *domain.CalendarEntry) (*domain.CalendarEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_entries").
		Columns(
			"company_id",
			"service_id",
			"professional_id",
			"entry_date",
			"start_time",
			"end_time",
			"status",
			"client_name",
			"client_phone",
			"client_document",
			"client_email",
		).
		Values(
			entry.CompanyID,
			entry.ServiceID,
			entry.ProfessionalID,
			entry.Date,
			entry.StartTime,
			entry.EndTime,
			entry.Status,
			entry.ClientName,
			entry.ClientPhone,
			entry.ClientDocument,
			entry.ClientEmail,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetByCompanyAndDate получает все занимающие слоты записи компании на дату
// Внутри транзакции добавляет FOR UPDATE - это freshness-чтение шага Confirming,
// блокирующее конкурентные коммиты на ту же дату
func (r *Repository) GetByCompanyAndDate(ctx context.Context, companyID int64, date time.Time) ([]*domain.CalendarEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("calendar_entries").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"entry_date": dateOnly(date)}).
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// GetByCompanyAndDateRange получает занимающие слоты записи компании за период
// Границы включаются. Используется один раз при открытии сессии бронирования,
// чтобы выгрузить занятость всего горизонта одним запросом
func (r *Repository) GetByCompanyAndDateRange(ctx context.Context, companyID int64, start, end time.Time) ([]*domain.CalendarEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("calendar_entries").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"entry_date": dateOnly(start)}).
		Where(squirrel.LtOrEq{"entry_date": dateOnly(end)}).
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		OrderBy("entry_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// scanEntries сканирует результаты запроса в слайс записей календаря
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.CalendarEntry, error) {
	entries := make([]*domain.CalendarEntry, 0)

	for rows.Next() {
		var entry domain.CalendarEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.CompanyID,
			&entry.ServiceID,
			&entry.ProfessionalID,
			&entry.Date,
			&entry.StartTime,
			&entry.EndTime,
			&entry.Status,
			&entry.ClientName,
			&entry.ClientPhone,
			&entry.ClientDocument,
			&entry.ClientEmail,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// blockingStatusStrings возвращает занимающие слоты статусы для фильтра запроса
func blockingStatusStrings() []string {
	statuses := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
