package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	staffClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией доступности
type Service struct {
	configRepo  ConfigRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Resolve возвращает эффективную конфигурацию для пары (компания, услуга)
// Приоритет: service > company > дефолты движка
// Публичный метод - отсутствие сохраненной конфигурации не ошибка
func (s *Service) Resolve(ctx context.Context, companyID int64, serviceID *int64) (*domain.AvailabilityConfig, error) {
	config, err := s.configRepo.GetConfigWithHierarchy(ctx, companyID, serviceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			defaults := domain.DefaultAvailabilityConfig()
			defaults.CompanyID = companyID
			return defaults, nil
		}
		s.logger.Error("Resolve: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	return config, nil
}

// GetEffective возвращает эффективную конфигурацию как DTO
// Используется публичной ручкой GET availability-config
func (s *Service) GetEffective(ctx context.Context, companyID int64, serviceID *int64) (*models.ConfigResponse, error) {
	config, err := s.Resolve(ctx, companyID, serviceID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConfig(config), nil
}

// GetAllByCompany получает все сохраненные конфигурации компании
// Доступно только менеджерам компании
func (s *Service) GetAllByCompany(ctx context.Context, companyID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByCompany: fetching configs for company=%d by user=%d", companyID, userID)

	if err := s.checkManagerAccess(ctx, companyID, userID, "GetAllByCompany"); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("GetAllByCompany: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetAllByCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByCompany: successfully fetched %d configs for company=%d", len(configs), companyID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию для (компания, услуга)
// Доступно только менеджерам компании
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for company=%d, service=%v by user=%d",
		req.CompanyID, req.ServiceID, req.UserID)

	config := req.ToDomainConfig()

	// 1. Валидируем входные данные
	if err := s.validateConfigData(config); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер компании)
	if err := s.checkManagerAccess(ctx, req.CompanyID, req.UserID, "Upsert"); err != nil {
		return nil, err
	}

	// 3. Если указан serviceID, проверяем его существование
	if req.ServiceID != nil {
		if _, err := s.staffClient.GetService(ctx, req.CompanyID, *req.ServiceID); err != nil {
			if errors.Is(err, staffClient.ErrServiceNotFound) {
				s.logger.Warn("Upsert: service id=%d not found in company=%d", *req.ServiceID, req.CompanyID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Upsert: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 4. Создаем или обновляем конфигурацию
	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером компании
func (s *Service) checkManagerAccess(ctx context.Context, companyID, userID int64, op string) error {
	company, err := s.staffClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			s.logger.Warn("%s: company id=%d not found", op, companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("%s: failed to get company id=%d: %v", op, companyID, err)
		return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if !s.isManager(company, userID) {
		s.logger.Warn("%s: user=%d is not a manager of company=%d", op, userID, companyID)
		return ErrAccessDenied
	}

	return nil
}

// isManager проверяет, что пользователь является менеджером компании
func (s *Service) isManager(company *staffClient.Company, userID int64) bool {
	for _, managerID := range company.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(config *domain.AvailabilityConfig) error {
	if config.HorizonDays < domain.MinHorizonDays || config.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be between %d and %d",
			ErrInvalidInput, domain.MinHorizonDays, domain.MaxHorizonDays)
	}

	if config.LowSlotsThreshold < domain.MinLowSlotsThreshold || config.LowSlotsThreshold > domain.MaxLowSlotsThreshold {
		return fmt.Errorf("%w: lowSlotsThreshold must be between %d and %d",
			ErrInvalidInput, domain.MinLowSlotsThreshold, domain.MaxLowSlotsThreshold)
	}

	if config.SameDayCutoffMinutes < domain.MinSameDayCutoffMinutes || config.SameDayCutoffMinutes > domain.MaxSameDayCutoffMinutes {
		return fmt.Errorf("%w: sameDayCutoffMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSameDayCutoffMinutes, domain.MaxSameDayCutoffMinutes)
	}

	return nil
}
