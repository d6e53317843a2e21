package get_day_statuses

import (
	"context"
	"errors"
	"fmt"

	staffClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case раскраски календаря: классификация дат окна бронирования
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

// Execute выполняет use case раскраски календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayStatuses: company=%d, service=%d", req.CompanyID, req.ServiceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayStatuses: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование компании и услуги
	if err := uc.checkDirectory(ctx, req.CompanyID, req.ServiceID, "GetDayStatuses"); err != nil {
		return nil, err
	}

	// 3. Разрешаем эффективную конфигурацию
	cfg, err := uc.configService.Resolve(ctx, req.CompanyID, ptr.Ptr(req.ServiceID))
	if err != nil {
		uc.logger.Error("GetDayStatuses: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 4. Загружаем шаблоны и занятость всего окна
	templates, err := uc.templateRepo.GetByCompanyAndService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetDayStatuses: failed to load templates: %v", err)
		return nil, fmt.Errorf("%w: failed to load templates: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	today := dateOnly(now)
	horizonEnd := today.AddDate(0, 0, cfg.HorizonDays-1)

	// Опциональное под-окно: from должен лежать в окне бронирования,
	// days не выводит конец под-окна за горизонт
	windowStart := today
	if req.From != nil {
		windowStart = dateOnly(*req.From)
		if windowStart.Before(today) || windowStart.After(horizonEnd) {
			uc.logger.Warn("GetDayStatuses: from=%s is outside the booking window", windowStart.Format("2006-01-02"))
			return nil, fmt.Errorf("%w: from is outside the booking window", ErrInvalidInput)
		}
	}

	windowDays := daysBetween(windowStart, horizonEnd) + 1
	if req.Days != nil && *req.Days < windowDays {
		windowDays = *req.Days
	}
	windowEnd := windowStart.AddDate(0, 0, windowDays-1)

	entries, err := uc.inventoryRepo.GetByCompanyAndDateRange(ctx, req.CompanyID, windowStart, windowEnd)
	if err != nil {
		uc.logger.Error("GetDayStatuses: failed to load calendar entries: %v", err)
		return nil, fmt.Errorf("%w: failed to load calendar entries: %v", ErrInternal, err)
	}

	// 5. Классифицируем каждую дату под-окна
	windowCfg := *cfg
	windowCfg.HorizonDays = windowDays
	statuses := availability.DayStatuses(windowStart, templates, entries, now, &windowCfg)

	days := make([]Day, 0, len(statuses))
	for _, d := range statuses {
		days = append(days, Day{
			Date:      d.Date,
			Status:    string(d.Status),
			OpenSlots: d.OpenSlots,
		})
	}

	uc.logger.Info("GetDayStatuses: classified %d days for company=%d, service=%d",
		len(days), req.CompanyID, req.ServiceID)

	return &Response{
		CompanyID:   req.CompanyID,
		ServiceID:   req.ServiceID,
		WindowStart: windowStart,
		HorizonDays: windowDays,
		Days:        days,
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
