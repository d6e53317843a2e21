package get_open_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	staffClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case получения открытых слотов на дату
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

// Execute выполняет use case получения открытых слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetOpenSlots: company=%d, service=%d, date=%s",
		req.CompanyID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetOpenSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование компании и услуги
	if err := uc.checkDirectory(ctx, req.CompanyID, req.ServiceID, "GetOpenSlots"); err != nil {
		return nil, err
	}

	// 3. Разрешаем эффективную конфигурацию
	cfg, err := uc.configService.Resolve(ctx, req.CompanyID, ptr.Ptr(req.ServiceID))
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 4. Валидация даты относительно окна бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, cfg.HorizonDays); err != nil {
		uc.logger.Warn("GetOpenSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Загружаем шаблоны и занятость даты
	templates, err := uc.templateRepo.GetByCompanyAndService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to load templates: %v", err)
		return nil, fmt.Errorf("%w: failed to load templates: %v", ErrInternal, err)
	}

	entries, err := uc.inventoryRepo.GetByCompanyAndDate(ctx, req.CompanyID, req.Date)
	if err != nil {
		uc.logger.Error("GetOpenSlots: failed to load calendar entries: %v", err)
		return nil, fmt.Errorf("%w: failed to load calendar entries: %v", ErrInternal, err)
	}

	// 6. Вычисляем открытые слоты
	open := availability.OpenSlots(req.Date, templates, entries, req.ProfessionalID, now, cfg)

	slots := make([]Slot, 0, len(open))
	for _, s := range open {
		slots = append(slots, Slot{
			TemplateID: s.TemplateID,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
		})
	}

	uc.logger.Info("GetOpenSlots: found %d open slots for company=%d, service=%d, date=%s",
		len(slots), req.CompanyID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		CompanyID:      req.CompanyID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		Slots:          slots,
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
