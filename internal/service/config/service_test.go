package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Фейки зависимостей

type fakeConfigRepo struct {
	hierarchyConfig *domain.AvailabilityConfig
	hierarchyErr    error
	companyConfigs  []*domain.AvailabilityConfig
	upserted        *domain.AvailabilityConfig
}

func (f *fakeConfigRepo) GetByCompanyAndService(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error) {
	return f.hierarchyConfig, f.hierarchyErr
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error) {
	return f.hierarchyConfig, f.hierarchyErr
}

func (f *fakeConfigRepo) GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.AvailabilityConfig, error) {
	return f.companyConfigs, nil
}

func (f *fakeConfigRepo) Upsert(ctx context.Context, config *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error) {
	f.upserted = config
	saved := *config
	saved.ID = 42
	return &saved, nil
}

type fakeStaffClient struct {
	company    *staffservice.Company
	companyErr error
	service    *staffservice.Service
	serviceErr error
}

func (f *fakeStaffClient) GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error) {
	return f.company, f.companyErr
}

func (f *fakeStaffClient) GetService(ctx context.Context, companyID, serviceID int64) (*staffservice.Service, error) {
	return f.service, f.serviceErr
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func managedCompany() *staffservice.Company {
	return &staffservice.Company{
		ID:         1,
		Name:       "Барбершоп",
		ManagerIDs: []int64{100},
		IsActive:   true,
	}
}

func TestService_Resolve_Defaults(t *testing.T) {
	repo := &fakeConfigRepo{hierarchyErr: configRepo.ErrConfigNotFound}
	svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

	config, err := svc.Resolve(context.Background(), 1, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), config.CompanyID)
	assert.Equal(t, domain.DefaultHorizonDays, config.HorizonDays)
	assert.Equal(t, domain.DefaultLowSlotsThreshold, config.LowSlotsThreshold)
	assert.Equal(t, domain.DefaultSameDayCutoffMinutes, config.SameDayCutoffMinutes)
	assert.Equal(t, domain.DefaultUnassignedBlocksAll, config.UnassignedBlocksAll)
}

func TestService_Resolve_Stored(t *testing.T) {
	stored := &domain.AvailabilityConfig{
		ID:                1,
		CompanyID:         1,
		HorizonDays:       14,
		LowSlotsThreshold: 2,
	}
	repo := &fakeConfigRepo{hierarchyConfig: stored}
	svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

	config, err := svc.Resolve(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 14, config.HorizonDays)
}

func TestService_GetAllByCompany_ManagerOnly(t *testing.T) {
	repo := &fakeConfigRepo{
		companyConfigs: []*domain.AvailabilityConfig{{ID: 1, CompanyID: 1, HorizonDays: 14, LowSlotsThreshold: 3}},
	}
	svc := NewService(repo, &fakeStaffClient{company: managedCompany()}, nopLogger{})

	// Менеджер получает список
	list, err := svc.GetAllByCompany(context.Background(), 1, 100)
	require.NoError(t, err)
	require.Len(t, list.Configs, 1)

	// Не-менеджер получает отказ
	_, err = svc.GetAllByCompany(context.Background(), 1, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetAllByCompany_CompanyNotFound(t *testing.T) {
	svc := NewService(&fakeConfigRepo{}, &fakeStaffClient{companyErr: staffservice.ErrCompanyNotFound}, nopLogger{})

	_, err := svc.GetAllByCompany(context.Background(), 1, 100)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestService_Upsert(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo, &fakeStaffClient{company: managedCompany()}, nopLogger{})

	resp, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		UserID:      100,
		CompanyID:   1,
		HorizonDays: ptr.Ptr(14),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 14, resp.HorizonDays)
	// Опущенные поля заполняются дефолтами
	assert.Equal(t, domain.DefaultLowSlotsThreshold, resp.LowSlotsThreshold)

	require.NotNil(t, repo.upserted)
	assert.Nil(t, repo.upserted.ServiceID)
}

func TestService_Upsert_Validation(t *testing.T) {
	svc := NewService(&fakeConfigRepo{}, &fakeStaffClient{company: managedCompany()}, nopLogger{})

	_, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		UserID:      100,
		CompanyID:   1,
		HorizonDays: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		UserID:               100,
		CompanyID:            1,
		SameDayCutoffMinutes: ptr.Ptr(2000),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Upsert_AccessDenied(t *testing.T) {
	svc := NewService(&fakeConfigRepo{}, &fakeStaffClient{company: managedCompany()}, nopLogger{})

	_, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		UserID:    200,
		CompanyID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Upsert_ServiceNotFound(t *testing.T) {
	staff := &fakeStaffClient{
		company:    managedCompany(),
		serviceErr: staffservice.ErrServiceNotFound,
	}
	svc := NewService(&fakeConfigRepo{}, staff, nopLogger{})

	_, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		UserID:    100,
		CompanyID: 1,
		ServiceID: ptr.Ptr(int64(5)),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
