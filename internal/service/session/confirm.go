package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// notifyTimeout таймаут отправки уведомления после коммита
const notifyTimeout = 5 * time.Second

// Confirm подтверждает бронирование
// Проверка занятости и вставка записи выполняются в одной сериализуемой
// транзакции с блокировкой записей даты (FOR UPDATE) - это закрывает гонку
// двух сессий за один слот. Проигравшая сессия получает ErrSlotConflict
// и откатывается на шаг select_time с исключенным слотом
func (e *Engine) Confirm(ctx context.Context, sessionID string, userID int64) (*models.SessionResponse, error) {
	s, err := e.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if s.Step != domain.StepEnterDetails {
		return nil, fmt.Errorf("%w: confirmation is allowed only after details", ErrInvalidTransition)
	}
	if s.SelectedSlot == nil || s.SelectedDate == nil {
		return nil, fmt.Errorf("%w: slot is not selected", ErrInvalidTransition)
	}
	if s.Details == nil {
		return nil, fmt.Errorf("%w: client details are not entered", ErrInvalidTransition)
	}
	if e.requiresProfessionalChoice(s) && s.SelectedProfessionalID == nil {
		return nil, &ValidationError{Field: "professionalId", Message: "is required for this service"}
	}

	now := e.timeProvider.Now()
	slot := *s.SelectedSlot

	// Слот мог уйти за отсечку, пока пользователь вводил данные
	if expired := e.slotBehindCutoff(&slot, now, s.Config); expired {
		e.logger.Warn("Confirm: slot start=%s is behind cutoff for session id=%s", slot.StartTime, s.ID)
		s.SelectedSlot = nil
		s.Step = domain.StepSelectTime
		if saveErr := e.save(ctx, s); saveErr != nil {
			return nil, saveErr
		}
		return nil, ErrSlotUnavailable
	}

	professionalID := ptr.Deref(s.SelectedProfessionalID, domain.UnassignedProfessionalID)

	entry := &domain.CalendarEntry{
		CompanyID:      s.CompanyID,
		ServiceID:      s.ServiceID,
		ProfessionalID: professionalID,
		Date:           slot.Date,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		Status:         domain.StatusBooked,
		ClientName:     s.Details.Name,
		ClientPhone:    s.Details.Phone,
		ClientDocument: s.Details.Document,
		ClientEmail:    s.Details.Email,
	}

	var fresh []*domain.CalendarEntry

	txErr := e.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// FOR UPDATE: конкурентные подтверждения на эту дату ждут коммита
		dayEntries, err := e.inventoryRepo.GetByCompanyAndDate(txCtx, s.CompanyID, slot.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to read calendar entries: %v", ErrInternal, err)
		}
		fresh = dayEntries

		if availability.IsOccupied(&slot, dayEntries, &professionalID, s.Config.UnassignedBlocksAll) {
			return ErrSlotConflict
		}

		created, err := e.inventoryRepo.Create(txCtx, entry)
		if err != nil {
			return fmt.Errorf("%w: failed to create calendar entry: %v", ErrInternal, err)
		}
		entry = created

		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrSlotConflict) {
			return e.handleConflict(ctx, s, &slot, fresh)
		}
		e.logger.Error("Confirm: transaction failed for session id=%s: %v", s.ID, txErr)
		if errors.Is(txErr, ErrInternal) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: confirm transaction failed: %v", ErrInternal, txErr)
	}

	// Коммит прошел - фиксируем сессию как завершенную
	s.Entries = append(s.Entries, entry)
	s.BookingID = &entry.ID
	s.Step = domain.StepCompleted

	if err := e.save(ctx, s); err != nil {
		// Запись уже в календаре, сессию потеряли только в Redis
		e.logger.Error("Confirm: entry id=%d created but session id=%s not saved: %v", entry.ID, s.ID, err)
	}

	e.notifyConfirmed(s, entry)

	e.logger.Info("Confirm: session id=%s completed with entry id=%d", s.ID, entry.ID)
	return e.respond(s), nil
}

// handleConflict откатывает сессию на выбор времени после проигранной гонки
func (e *Engine) handleConflict(
	ctx context.Context,
	s *domain.BookingSession,
	slot *domain.ResolvedSlot,
	fresh []*domain.CalendarEntry,
) (*models.SessionResponse, error) {
	e.logger.Warn("Confirm: slot date=%s start=%s lost the race in session id=%s",
		slot.Date.Format(domain.DateFormat), slot.StartTime, s.ID)

	if fresh != nil {
		s.ReplaceEntriesForDate(slot.Date, fresh)
	}
	s.Exclude(slot.Date, slot.StartTime)
	s.SelectedSlot = nil
	s.Step = domain.StepSelectTime

	if err := e.save(ctx, s); err != nil {
		return nil, err
	}

	return e.respond(s), ErrSlotConflict
}

// slotBehindCutoff проверяет, что сегодняшний слот ушел за отсечку
func (e *Engine) slotBehindCutoff(slot *domain.ResolvedSlot, now time.Time, cfg *domain.AvailabilityConfig) bool {
	open := availability.OpenSlots(slot.Date, []*domain.ScheduleTemplate{{
		ID:        slot.TemplateID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Weekdays:  domain.NewWeekdaySet(slot.Date.Weekday()),
	}}, nil, nil, now, cfg)

	return len(open) == 0
}

// notifyConfirmed отправляет уведомление о подтвержденном бронировании
// Fire-and-forget: ошибки логируются и никогда не влияют на результат
func (e *Engine) notifyConfirmed(s *domain.BookingSession, entry *domain.CalendarEntry) {
	professionalName := ""
	for _, p := range s.Professionals {
		if p.ID == entry.ProfessionalID {
			professionalName = p.Name
			break
		}
	}

	notification := &notifier.BookingNotification{
		EntryID:          entry.ID,
		CompanyID:        entry.CompanyID,
		ServiceName:      s.ServiceName,
		ProfessionalName: professionalName,
		Date:             entry.Date.Format(domain.DateFormat),
		StartTime:        entry.StartTime.String(),
		ClientName:       entry.ClientName,
		ClientPhone:      entry.ClientPhone,
		ClientEmail:      entry.ClientEmail,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := e.notifier.SendBookingConfirmation(ctx, notification); err != nil {
			e.logger.Warn("notifyConfirmed: failed to notify about entry id=%d: %v", entry.ID, err)
		}
	}()
}
