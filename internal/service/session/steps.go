package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/professionals"
	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SelectDate выбирает дату бронирования и переводит сессию на шаг select_time
// Допустимо и с последующих шагов - возврат к календарю сбрасывает
// выбранные слот и контактные данные
func (e *Engine) SelectDate(ctx context.Context, sessionID string, req *models.SelectDateRequest) (*models.SessionResponse, error) {
	s, err := e.loadOwned(ctx, sessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	if s.Step.IsTerminal() {
		return nil, fmt.Errorf("%w: session is already %s", ErrInvalidTransition, s.Step)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"}
	}

	if !s.InWindow(date) {
		e.logger.Warn("SelectDate: date=%s is outside booking window of session id=%s", req.Date, s.ID)
		return nil, ErrDateNotBookable
	}

	now := e.timeProvider.Now()
	day := availability.DayStatusFor(date, s.Templates, s.Entries, now, s.Config)
	if !day.IsBookable() {
		e.logger.Warn("SelectDate: date=%s is blocked for session id=%s", req.Date, s.ID)
		return nil, ErrDateNotBookable
	}

	selected := dateOnly(date)
	s.SelectedDate = &selected
	s.SelectedSlot = nil
	s.Details = nil
	s.Step = domain.StepSelectTime

	if err := e.save(ctx, s); err != nil {
		return nil, err
	}

	e.logger.Info("SelectDate: session id=%s moved to %s with date=%s", s.ID, s.Step, req.Date)
	return e.respond(s), nil
}

// SelectSlot выбирает слот на выбранной дате и переводит сессию на шаг enter_details
// Перед выбором занятость даты перечитывается из БД - снапшот сессии мог устареть
func (e *Engine) SelectSlot(ctx context.Context, sessionID string, req *models.SelectSlotRequest) (*models.SessionResponse, error) {
	s, err := e.loadOwned(ctx, sessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	if s.Step != domain.StepSelectTime && s.Step != domain.StepEnterDetails {
		return nil, fmt.Errorf("%w: slot can be selected only after date", ErrInvalidTransition)
	}
	if s.SelectedDate == nil {
		return nil, fmt.Errorf("%w: date is not selected", ErrInvalidTransition)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, &ValidationError{Field: "startTime", Message: "must be in HH:MM format"}
	}

	// Freshness-перечитывание занятости даты
	fresh, err := e.inventoryRepo.GetByCompanyAndDate(ctx, s.CompanyID, *s.SelectedDate)
	if err != nil {
		e.logger.Error("SelectSlot: failed to refresh entries for session id=%s: %v", s.ID, err)
		return nil, fmt.Errorf("%w: failed to refresh calendar entries: %v", ErrInternal, err)
	}
	s.ReplaceEntriesForDate(*s.SelectedDate, fresh)

	now := e.timeProvider.Now()

	var slot *domain.ResolvedSlot
	for _, candidate := range e.openSlotsFor(s, now) {
		if candidate.StartTime == start {
			c := candidate
			slot = &c
			break
		}
	}

	if slot == nil {
		e.logger.Warn("SelectSlot: slot start=%s is not available for session id=%s", req.StartTime, s.ID)
		return nil, ErrSlotUnavailable
	}

	s.SelectedSlot = slot
	s.Step = domain.StepEnterDetails

	if err := e.save(ctx, s); err != nil {
		return nil, err
	}

	e.logger.Info("SelectSlot: session id=%s moved to %s with slot=%s", s.ID, s.Step, req.StartTime)
	return e.respond(s), nil
}

// SelectProfessional выбирает мастера из кандидатов сессии
// Шаг сессии не меняется: выбор мастера - уточнение, допустимое
// на шагах select_time и enter_details
func (e *Engine) SelectProfessional(ctx context.Context, sessionID string, req *models.SelectProfessionalRequest) (*models.SessionResponse, error) {
	s, err := e.loadOwned(ctx, sessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	if s.Step != domain.StepSelectTime && s.Step != domain.StepEnterDetails {
		return nil, fmt.Errorf("%w: professional can be selected only after date", ErrInvalidTransition)
	}

	if !s.HasProfessional(req.ProfessionalID) {
		e.logger.Warn("SelectProfessional: professional id=%d is not a candidate of session id=%s",
			req.ProfessionalID, s.ID)
		return nil, ErrProfessionalNotFound
	}

	// Выбранный слот должен оставаться свободным для этого мастера
	if s.SelectedSlot != nil {
		if !professionals.HasOpenSlot(s.SelectedSlot, s.Entries, req.ProfessionalID, s.Config) {
			e.logger.Warn("SelectProfessional: slot is occupied for professional id=%d in session id=%s",
				req.ProfessionalID, s.ID)
			return nil, ErrSlotUnavailable
		}
	}

	professionalID := req.ProfessionalID
	s.SelectedProfessionalID = &professionalID

	if err := e.save(ctx, s); err != nil {
		return nil, err
	}

	e.logger.Info("SelectProfessional: session id=%s selected professional id=%d", s.ID, req.ProfessionalID)
	return e.respond(s), nil
}

// SubmitDetails сохраняет контактные данные клиента
// Сессия остается на шаге enter_details до подтверждения
func (e *Engine) SubmitDetails(ctx context.Context, sessionID string, req *models.SubmitDetailsRequest) (*models.SessionResponse, error) {
	s, err := e.loadOwned(ctx, sessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	if s.Step != domain.StepEnterDetails {
		return nil, fmt.Errorf("%w: details can be entered only after slot", ErrInvalidTransition)
	}

	details, err := validateDetails(req, s.RequireEmail)
	if err != nil {
		e.logger.Warn("SubmitDetails: validation failed for session id=%s: %v", s.ID, err)
		return nil, err
	}

	s.Details = details

	if err := e.save(ctx, s); err != nil {
		return nil, err
	}

	e.logger.Info("SubmitDetails: session id=%s stored client details", s.ID)
	return e.respond(s), nil
}

// validateDetails валидирует контактные данные клиента
func validateDetails(req *models.SubmitDetailsRequest, requireEmail bool) (*domain.ClientDetails, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	document := strings.TrimSpace(req.Document)

	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if len(name) > domain.MaxClientNameLength {
		return nil, &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", domain.MaxClientNameLength)}
	}

	if phone == "" {
		return nil, &ValidationError{Field: "phone", Message: "must not be empty"}
	}
	if len(phone) > domain.MaxClientPhoneLength {
		return nil, &ValidationError{Field: "phone", Message: fmt.Sprintf("must be at most %d characters", domain.MaxClientPhoneLength)}
	}

	if document == "" {
		return nil, &ValidationError{Field: "document", Message: "must not be empty"}
	}
	if len(document) > domain.MaxClientDocumentLength {
		return nil, &ValidationError{Field: "document", Message: fmt.Sprintf("must be at most %d characters", domain.MaxClientDocumentLength)}
	}

	var email *string
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		if trimmed != "" {
			if len(trimmed) > domain.MaxClientEmailLength {
				return nil, &ValidationError{Field: "email", Message: fmt.Sprintf("must be at most %d characters", domain.MaxClientEmailLength)}
			}
			if !strings.Contains(trimmed, "@") {
				return nil, &ValidationError{Field: "email", Message: "must be a valid email address"}
			}
			email = &trimmed
		}
	}

	if requireEmail && email == nil {
		return nil, &ValidationError{Field: "email", Message: "is required"}
	}

	return &domain.ClientDetails{
		Name:     name,
		Phone:    phone,
		Document: document,
		Email:    email,
	}, nil
}
