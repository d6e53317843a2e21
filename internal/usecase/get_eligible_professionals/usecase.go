package get_eligible_professionals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	staffClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/professionals"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case подбора мастеров со свободным временем на дату
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

// Execute выполняет use case подбора мастеров
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetEligibleProfessionals: company=%d, service=%d, date=%s",
		req.CompanyID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetEligibleProfessionals: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование компании и услуги
	if err := uc.checkDirectory(ctx, req.CompanyID, req.ServiceID, "GetEligibleProfessionals"); err != nil {
		return nil, err
	}

	// 3. Получаем кандидатов из StaffService
	staffProfessionals, err := uc.staffClient.GetProfessionals(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffClient.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetEligibleProfessionals: failed to load professionals: %v", err)
		return nil, fmt.Errorf("%w: failed to load professionals: %v", ErrInternal, err)
	}

	// Услуга без мастеров бронируется без выбора мастера
	if len(staffProfessionals) == 0 {
		uc.logger.Info("GetEligibleProfessionals: service id=%d has no bound professionals", req.ServiceID)
		return &Response{
			CompanyID:       req.CompanyID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			AnyProfessional: true,
			Professionals:   []Professional{},
		}, nil
	}

	// 4. Разрешаем конфигурацию и загружаем шаблоны с занятостью даты
	cfg, err := uc.configService.Resolve(ctx, req.CompanyID, ptr.Ptr(req.ServiceID))
	if err != nil {
		uc.logger.Error("GetEligibleProfessionals: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	templates, err := uc.templateRepo.GetByCompanyAndService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetEligibleProfessionals: failed to load templates: %v", err)
		return nil, fmt.Errorf("%w: failed to load templates: %v", ErrInternal, err)
	}

	entries, err := uc.inventoryRepo.GetByCompanyAndDate(ctx, req.CompanyID, req.Date)
	if err != nil {
		uc.logger.Error("GetEligibleProfessionals: failed to load calendar entries: %v", err)
		return nil, fmt.Errorf("%w: failed to load calendar entries: %v", ErrInternal, err)
	}

	// 5. Фильтруем кандидатов по свободному времени на дату
	candidates := make([]domain.SessionProfessional, 0, len(staffProfessionals))
	for _, p := range staffProfessionals {
		candidates = append(candidates, domain.SessionProfessional{ID: p.ID, Name: p.Name})
	}

	eligible := professionals.Eligible(req.Date, candidates, templates, entries, uc.timeProvider.Now(), cfg)

	result := make([]Professional, 0, len(eligible))
	for _, p := range eligible {
		result = append(result, Professional{ID: p.ID, Name: p.Name})
	}

	uc.logger.Info("GetEligibleProfessionals: %d of %d professionals are eligible for company=%d, service=%d, date=%s",
		len(result), len(candidates), req.CompanyID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		CompanyID:     req.CompanyID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Professionals: result,
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

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}
