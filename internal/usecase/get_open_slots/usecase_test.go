package get_open_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// 2026-03-02 - понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// Фейки зависимостей

type fakeInventory struct {
	entries []*domain.CalendarEntry
}

func (f *fakeInventory) GetByCompanyAndDate(ctx context.Context, companyID int64, date time.Time) ([]*domain.CalendarEntry, error) {
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

type fakeStaff struct{}

func (fakeStaff) GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error) {
	return &staffservice.Company{ID: companyID, IsActive: true}, nil
}

func (fakeStaff) GetService(ctx context.Context, companyID, serviceID int64) (*staffservice.Service, error) {
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

func newUseCase(entries []*domain.CalendarEntry) *UseCase {
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
		fakeStaff{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{at: monday.Add(8 * time.Hour)}
	return uc
}

func TestExecute(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
}

func TestExecute_OccupiedSlotHidden(t *testing.T) {
	entries := []*domain.CalendarEntry{{
		CompanyID: 1,
		Date:      monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    domain.StatusBooked,
	}}
	uc := newUseCase(entries)

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
}

func TestExecute_ProfessionalCut(t *testing.T) {
	entries := []*domain.CalendarEntry{{
		CompanyID:      1,
		ProfessionalID: 1,
		Date:           monday,
		StartTime:      "09:00",
		EndTime:        "10:00",
		Status:         domain.StatusBooked,
	}}
	uc := newUseCase(entries)

	// Для мастера 1 слот 09:00 занят
	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:      1,
		ServiceID:      1,
		Date:           monday,
		ProfessionalID: ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	// Для мастера 2 оба слота свободны
	resp, err = uc.Execute(context.Background(), &Request{
		CompanyID:      1,
		ServiceID:      1,
		Date:           monday,
		ProfessionalID: ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newUseCase(nil)

	// Прошедшая дата
	_, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 1,
		Date:      monday.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Дата за горизонтом из 7 дней
	_, err = uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 1,
		Date:      monday.AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, ErrDateOutOfHorizon)

	// Последний день горизонта допустим
	_, err = uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 1,
		Date:      monday.AddDate(0, 0, 6),
	})
	assert.NoError(t, err)
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{CompanyID: 0, ServiceID: 1, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CompanyID: 1, ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		CompanyID:      1,
		ServiceID:      1,
		Date:           monday,
		ProfessionalID: ptr.Ptr(int64(0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
