package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/sessionstore"
	staffClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/professionals"
	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
)

// Engine движок сессий бронирования
// Держит state machine мастера: select_date -> select_time -> enter_details ->
// completed, с отменой из любого нефинального шага. Сессия живет в Redis,
// все переходы проходят через Save с обновлением TTL
type Engine struct {
	store         SessionStore
	inventoryRepo InventoryRepository
	templateRepo  TemplateRepository
	configService ConfigResolver
	staffClient   StaffServiceClient
	notifier      NotifierClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	sessionTTL    time.Duration
	logger        Logger
}

// NewEngine создает новый движок сессий бронирования
func NewEngine(
	store SessionStore,
	inventoryRepo InventoryRepository,
	templateRepo TemplateRepository,
	configService ConfigResolver,
	staffClient StaffServiceClient,
	notifier NotifierClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	sessionTTL time.Duration,
	logger Logger,
) *Engine {
	return &Engine{
		store:         store,
		inventoryRepo: inventoryRepo,
		templateRepo:  templateRepo,
		configService: configService,
		staffClient:   staffClient,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  timeProvider,
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

// Open открывает новую сессию бронирования
// Снимает снапшот шаблонов, занятости горизонта, конфигурации и мастеров,
// и возвращает сессию на шаге select_date с раскраской календаря
func (e *Engine) Open(ctx context.Context, req *models.OpenSessionRequest) (*models.SessionResponse, error) {
	e.logger.Info("Open: opening session for user=%d, company=%d, service=%d",
		req.UserID, req.CompanyID, req.ServiceID)

	if req.UserID <= 0 || req.CompanyID <= 0 || req.ServiceID <= 0 {
		return nil, &ValidationError{Field: "companyId/serviceId/userId", Message: "must be positive"}
	}

	// 1. Проверяем существование компании и услуги
	company, err := e.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			e.logger.Warn("Open: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		e.logger.Error("Open: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	if !company.IsActive {
		return nil, ErrCompanyNotFound
	}

	service, err := e.staffClient.GetService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffClient.ErrServiceNotFound) {
			e.logger.Warn("Open: service id=%d not found in company=%d", req.ServiceID, req.CompanyID)
			return nil, ErrServiceNotFound
		}
		e.logger.Error("Open: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceNotFound
	}

	// 2. Разрешаем эффективную конфигурацию доступности
	cfg, err := e.configService.Resolve(ctx, req.CompanyID, &req.ServiceID)
	if err != nil {
		e.logger.Error("Open: failed to resolve config for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 3. Снимаем снапшот: шаблоны, занятость горизонта, мастера
	templates, err := e.templateRepo.GetByCompanyAndService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		e.logger.Error("Open: failed to load templates for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to load templates: %v", ErrInternal, err)
	}

	now := e.timeProvider.Now()
	windowStart := dateOnly(now)
	windowEnd := windowStart.AddDate(0, 0, cfg.HorizonDays-1)

	entries, err := e.inventoryRepo.GetByCompanyAndDateRange(ctx, req.CompanyID, windowStart, windowEnd)
	if err != nil {
		e.logger.Error("Open: failed to load calendar entries for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to load calendar entries: %v", ErrInternal, err)
	}

	staffProfessionals, err := e.staffClient.GetProfessionals(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		e.logger.Error("Open: failed to load professionals for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to load professionals: %v", ErrInternal, err)
	}

	candidates := make([]domain.SessionProfessional, 0, len(staffProfessionals))
	for _, p := range staffProfessionals {
		candidates = append(candidates, domain.SessionProfessional{ID: p.ID, Name: p.Name})
	}

	// 4. Собираем и сохраняем сессию
	s := &domain.BookingSession{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		CompanyID:     req.CompanyID,
		ServiceID:     req.ServiceID,
		Step:          domain.StepSelectDate,
		WindowStart:   windowStart,
		Templates:     templates,
		Entries:       entries,
		Config:        cfg,
		Professionals: candidates,
		ServiceName:   service.Name,
		RequireEmail:  req.RequireEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := e.store.Save(ctx, s, e.sessionTTL); err != nil {
		e.logger.Error("Open: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	e.logger.Info("Open: session id=%s opened for user=%d", s.ID, req.UserID)
	return e.respond(s), nil
}

// Get возвращает текущее состояние сессии
func (e *Engine) Get(ctx context.Context, sessionID string, userID int64) (*models.SessionResponse, error) {
	s, err := e.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	return e.respond(s), nil
}

// Cancel отменяет сессию и удаляет её из хранилища
// Допустимо из любого нефинального шага; записи календаря не затрагиваются
func (e *Engine) Cancel(ctx context.Context, sessionID string, userID int64) error {
	s, err := e.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return err
	}

	if s.Step.IsTerminal() {
		return fmt.Errorf("%w: session is already %s", ErrInvalidTransition, s.Step)
	}

	if err := e.store.Delete(ctx, sessionID); err != nil {
		e.logger.Error("Cancel: failed to delete session id=%s: %v", sessionID, err)
		return fmt.Errorf("%w: failed to delete session: %v", ErrInternal, err)
	}

	e.logger.Info("Cancel: session id=%s cancelled by user=%d", sessionID, userID)
	return nil
}

// Вспомогательные методы

// loadOwned загружает сессию и проверяет владельца
func (e *Engine) loadOwned(ctx context.Context, sessionID string, userID int64) (*domain.BookingSession, error) {
	if sessionID == "" {
		return nil, &ValidationError{Field: "sessionId", Message: "must not be empty"}
	}

	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		e.logger.Error("loadOwned: store error for session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}

	if s.UserID != userID {
		e.logger.Warn("loadOwned: user=%d tried to access session id=%s of user=%d", userID, sessionID, s.UserID)
		return nil, ErrAccessDenied
	}

	return s, nil
}

// save сохраняет сессию, обновляя UpdatedAt и продлевая TTL
func (e *Engine) save(ctx context.Context, s *domain.BookingSession) error {
	s.UpdatedAt = e.timeProvider.Now()

	if err := e.store.Save(ctx, s, e.sessionTTL); err != nil {
		e.logger.Error("save: failed to save session id=%s: %v", s.ID, err)
		return fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	return nil
}

// respond собирает DTO состояния сессии по снапшоту
func (e *Engine) respond(s *domain.BookingSession) *models.SessionResponse {
	now := e.timeProvider.Now()

	days := availability.DayStatuses(s.WindowStart, s.Templates, s.Entries, now, s.Config)

	var openSlots []domain.ResolvedSlot
	eligible := s.Professionals

	if s.SelectedDate != nil {
		openSlots = e.openSlotsFor(s, now)
		eligible = professionals.Eligible(*s.SelectedDate, s.Professionals, s.Templates, s.Entries, now, s.Config)
	}

	return models.FromSession(s, days, openSlots, eligible)
}

// openSlotsFor возвращает открытые слоты выбранной даты без исключенных
// Разрез по мастеру применяется, если мастер уже выбран
func (e *Engine) openSlotsFor(s *domain.BookingSession, now time.Time) []domain.ResolvedSlot {
	slots := availability.OpenSlots(*s.SelectedDate, s.Templates, s.Entries, s.SelectedProfessionalID, now, s.Config)

	visible := make([]domain.ResolvedSlot, 0, len(slots))
	for _, slot := range slots {
		if s.IsExcluded(slot.Date, slot.StartTime) {
			continue
		}
		visible = append(visible, slot)
	}

	return visible
}

// requiresProfessionalChoice проверяет, что услуга требует явного выбора мастера
func (e *Engine) requiresProfessionalChoice(s *domain.BookingSession) bool {
	return s.Config.RequiresProfessional && len(s.Professionals) > 0
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
