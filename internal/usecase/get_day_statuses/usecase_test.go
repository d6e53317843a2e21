package get_day_statuses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
)

// 2026-03-02 - понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// Фейки зависимостей

type fakeInventory struct {
	entries []*domain.CalendarEntry
}

func (f *fakeInventory) GetByCompanyAndDateRange(ctx context.Context, companyID int64, start, end time.Time) ([]*domain.CalendarEntry, error) {
	return f.entries, nil
}

type fakeTemplates struct {
	templates []*domain.ScheduleTemplate
}

func (f *fakeTemplates) GetByCompanyAndService(ctx context.Context, companyID, serviceID int64) ([]*domain.ScheduleTemplate, error) {
	return f.templates, nil
}

type fakeResolver struct {
	config *domain.AvailabilityConfig
}

func (f *fakeResolver) Resolve(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error) {
	return f.config, nil
}

type fakeStaff struct {
	companyErr error
	serviceErr error
}

func (f *fakeStaff) GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error) {
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	return &staffservice.Company{ID: companyID, IsActive: true}, nil
}

func (f *fakeStaff) GetService(ctx context.Context, companyID, serviceID int64) (*staffservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return &staffservice.Service{ID: serviceID, CompanyID: companyID, IsActive: true}, nil
}

type fixedTime struct {
	at time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.at
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newUseCase(staff *fakeStaff, templates []*domain.ScheduleTemplate, entries []*domain.CalendarEntry) *UseCase {
	uc := NewUseCase(
		&fakeInventory{entries: entries},
		&fakeTemplates{templates: templates},
		&fakeResolver{config: &domain.AvailabilityConfig{
			CompanyID:            1,
			HorizonDays:          7,
			LowSlotsThreshold:    1,
			SameDayCutoffMinutes: 15,
			UnassignedBlocksAll:  true,
		}},
		staff,
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{at: monday.Add(8 * time.Hour)}
	return uc
}

func TestExecute(t *testing.T) {
	templates := []*domain.ScheduleTemplate{
		{
			ID:        1,
			Weekdays:  domain.NewWeekdaySet(time.Monday),
			StartTime: "09:00",
			EndTime:   "10:00",
		},
		{
			ID:        2,
			Weekdays:  domain.NewWeekdaySet(time.Monday),
			StartTime: "10:00",
			EndTime:   "11:00",
		},
	}

	uc := newUseCase(&fakeStaff{}, templates, nil)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1})
	require.NoError(t, err)

	assert.Equal(t, monday, resp.WindowStart)
	assert.Equal(t, 7, resp.HorizonDays)
	require.Len(t, resp.Days, 7)

	assert.Equal(t, string(domain.DayAvailable), resp.Days[0].Status)
	assert.Equal(t, 2, resp.Days[0].OpenSlots)
	for i := 1; i < 7; i++ {
		assert.Equal(t, string(domain.DayBlocked), resp.Days[i].Status)
	}
}

func TestExecute_SubWindow(t *testing.T) {
	templates := []*domain.ScheduleTemplate{
		{
			ID:        1,
			Weekdays:  domain.NewWeekdaySet(time.Monday, time.Wednesday),
			StartTime: "09:00",
			EndTime:   "10:00",
		},
	}

	uc := newUseCase(&fakeStaff{}, templates, nil)

	// Под-окно из трех дат со среды
	from := monday.AddDate(0, 0, 2)
	days := 3
	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1, From: &from, Days: &days})
	require.NoError(t, err)

	assert.Equal(t, from, resp.WindowStart)
	assert.Equal(t, 3, resp.HorizonDays)
	require.Len(t, resp.Days, 3)
	assert.Equal(t, string(domain.DayLowSlots), resp.Days[0].Status)
	assert.Equal(t, 1, resp.Days[0].OpenSlots)

	// days обрезается по концу горизонта: от субботы остаются 2 даты
	from = monday.AddDate(0, 0, 5)
	days = 10
	resp, err = uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1, From: &from, Days: &days})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 2)
}

func TestExecute_SubWindow_Validation(t *testing.T) {
	uc := newUseCase(&fakeStaff{}, nil, nil)

	// from за горизонтом из 7 дней
	from := monday.AddDate(0, 0, 7)
	_, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1, From: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// from в прошлом
	from = monday.AddDate(0, 0, -1)
	_, err = uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1, From: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// days должен быть положительным
	days := 0
	_, err = uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1, Days: &days})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(&fakeStaff{}, nil, nil)

	_, err := uc.Execute(context.Background(), &Request{CompanyID: 0, ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_DirectoryErrors(t *testing.T) {
	uc := newUseCase(&fakeStaff{companyErr: staffservice.ErrCompanyNotFound}, nil, nil)
	_, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1})
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	uc = newUseCase(&fakeStaff{serviceErr: staffservice.ErrServiceNotFound}, nil, nil)
	_, err = uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
