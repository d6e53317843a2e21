package get_nearest_date

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	staffClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case поиска ближайшей доступной даты в окне бронирования
type UseCase struct {
	inventoryRepo InventoryRepository
	templateRepo  TemplateRepository
	configService ConfigResolver
	staffClient   StaffServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	inventoryRepo InventoryRepository,
	templateRepo TemplateRepository,
	configService ConfigResolver,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		inventoryRepo: inventoryRepo,
		templateRepo:  templateRepo,
		configService: configService,
		staffClient:   staffClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case поиска ближайшей доступной даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetNearestDate: company=%d, service=%d", req.CompanyID, req.ServiceID)

	// 1. Валидация входных данных
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// 2. Проверяем существование компании и услуги
	if err := uc.checkDirectory(ctx, req.CompanyID, req.ServiceID, "GetNearestDate"); err != nil {
		return nil, err
	}

	// 3. Разрешаем эффективную конфигурацию
	cfg, err := uc.configService.Resolve(ctx, req.CompanyID, ptr.Ptr(req.ServiceID))
	if err != nil {
		uc.logger.Error("GetNearestDate: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 4. Загружаем шаблоны и занятость всего окна
	templates, err := uc.templateRepo.GetByCompanyAndService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetNearestDate: failed to load templates: %v", err)
		return nil, fmt.Errorf("%w: failed to load templates: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	today := dateOnly(now)
	horizonEnd := today.AddDate(0, 0, cfg.HorizonDays-1)

	// Опциональное начало поиска: from должен лежать в окне бронирования
	windowStart := today
	if req.From != nil {
		windowStart = dateOnly(*req.From)
		if windowStart.Before(today) || windowStart.After(horizonEnd) {
			uc.logger.Warn("GetNearestDate: from=%s is outside the booking window", windowStart.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: from is outside the booking window", ErrInvalidInput)
		}
	}

	entries, err := uc.inventoryRepo.GetByCompanyAndDateRange(ctx, req.CompanyID, windowStart, horizonEnd)
	if err != nil {
		uc.logger.Error("GetNearestDate: failed to load calendar entries: %v", err)
		return nil, fmt.Errorf("%w: failed to load calendar entries: %v", ErrInternal, err)
	}

	// 5. Ищем первую незаблокированную дату от windowStart до горизонта
	windowCfg := *cfg
	windowCfg.HorizonDays = int(horizonEnd.Sub(windowStart).Hours()/24) + 1
	day := availability.NearestBookableDate(windowStart, templates, entries, now, &windowCfg)
	if day == nil {
		uc.logger.Info("GetNearestDate: no bookable date in %d-day window for company=%d, service=%d",
			cfg.HorizonDays, req.CompanyID, req.ServiceID)
		return &Response{
			CompanyID: req.CompanyID,
			ServiceID: req.ServiceID,
			Found:     false,
		}, nil
	}

	uc.logger.Info("GetNearestDate: nearest date=%s status=%s for company=%d, service=%d",
		day.Date.Format(domain.DateFormat), day.Status, req.CompanyID, req.ServiceID)

	return &Response{
		CompanyID: req.CompanyID,
		ServiceID: req.ServiceID,
		Found:     true,
		Date:      &day.Date,
		Status:    string(day.Status),
		OpenSlots: day.OpenSlots,
	}, nil
}

// checkDirectory проверяет существование компании и услуги в StaffService
func (uc *UseCase) checkDirectory(ctx context.Context, companyID, serviceID int64, op string) error {
	if _, err := uc.staffClient.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			uc.logger.Warn("%s: company id=%d not found", op, companyID)
			return ErrCompanyNotFound
		}
		uc.logger.Error("%s: failed to get company id=%d: %v", op, companyID, err)
		return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if _, err := uc.staffClient.GetService(ctx, companyID, serviceID); err != nil {
		if errors.Is(err, staffClient.ErrServiceNotFound) {
			uc.logger.Warn("%s: service id=%d not found", op, serviceID)
			return ErrServiceNotFound
		}
		uc.logger.Error("%s: failed to get service id=%d: %v", op, serviceID, err)
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
