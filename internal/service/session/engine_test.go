package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/sessionstore"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/session/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Фикстура: окно начинается в понедельник 2026-03-02, два шаблона на понедельник

var (
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fixedAt = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
)

// Фейки зависимостей

type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.BookingSession
	lastTTL  time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*domain.BookingSession)}
}

func (f *fakeStore) Save(ctx context.Context, s *domain.BookingSession, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *s
	f.sessions[s.ID] = &copied
	f.lastTTL = ttl
	return nil
}

func (f *fakeStore) Get(ctx context.Context, sessionID string) (*domain.BookingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, sessionStore.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

type fakeInventory struct {
	mu      sync.Mutex
	entries []*domain.CalendarEntry
	nextID  int64
}

func (f *fakeInventory) Create(ctx context.Context, entry *domain.CalendarEntry) (*domain.CalendarEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *entry
	created.ID = f.nextID
	f.entries = append(f.entries, &created)
	return &created, nil
}

func (f *fakeInventory) GetByCompanyAndDate(ctx context.Context, companyID int64, date time.Time) ([]*domain.CalendarEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.CalendarEntry, 0)
	for _, e := range f.entries {
		if e.CompanyID == companyID && e.Date.Equal(date) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeInventory) GetByCompanyAndDateRange(ctx context.Context, companyID int64, start, end time.Time) ([]*domain.CalendarEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.CalendarEntry, 0)
	for _, e := range f.entries {
		if e.CompanyID == companyID && !e.Date.Before(start) && !e.Date.After(end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeInventory) add(entry *domain.CalendarEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, entry)
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

type fakeStaff struct {
	company       *staffservice.Company
	companyErr    error
	service       *staffservice.Service
	serviceErr    error
	professionals []staffservice.Professional
}

func (f *fakeStaff) GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error) {
	return f.company, f.companyErr
}

func (f *fakeStaff) GetService(ctx context.Context, companyID, serviceID int64) (*staffservice.Service, error) {
	return f.service, f.serviceErr
}

func (f *fakeStaff) GetProfessionals(ctx context.Context, companyID, serviceID int64) ([]staffservice.Professional, error) {
	return f.professionals, nil
}

type fakeNotifier struct {
	sent chan *notifier.BookingNotification
}

func (f *fakeNotifier) SendBookingConfirmation(ctx context.Context, n *notifier.BookingNotification) error {
	f.sent <- n
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// Сборка движка с фикстурой

type testEnv struct {
	engine    *Engine
	store     *fakeStore
	inventory *fakeInventory
	notifier  *fakeNotifier
	clock     *fixedTime
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	inventory := &fakeInventory{}
	clock := &fixedTime{at: fixedAt}
	notif := &fakeNotifier{sent: make(chan *notifier.BookingNotification, 1)}

	templates := &fakeTemplates{templates: []*domain.ScheduleTemplate{
		{
			ID:        1,
			CompanyID: 1,
			ServiceID: 1,
			Weekdays:  domain.NewWeekdaySet(time.Monday),
			StartTime: "09:00",
			EndTime:   "10:00",
		},
		{
			ID:        2,
			CompanyID: 1,
			ServiceID: 1,
			Weekdays:  domain.NewWeekdaySet(time.Monday),
			StartTime: "10:00",
			EndTime:   "11:00",
		},
	}}

	resolver := &fakeResolver{config: &domain.AvailabilityConfig{
		CompanyID:            1,
		HorizonDays:          7,
		LowSlotsThreshold:    1,
		SameDayCutoffMinutes: 15,
		UnassignedBlocksAll:  true,
	}}

	staff := &fakeStaff{
		company: &staffservice.Company{ID: 1, Name: "Барбершоп", IsActive: true},
		service: &staffservice.Service{ID: 1, CompanyID: 1, Name: "Стрижка", IsActive: true},
		professionals: []staffservice.Professional{
			{ID: 1, Name: "Анна", IsActive: true},
			{ID: 2, Name: "Борис", IsActive: true},
		},
	}

	engine := NewEngine(
		store,
		inventory,
		templates,
		resolver,
		staff,
		notif,
		fakeTxManager{},
		clock,
		30*time.Minute,
		nopLogger{},
	)

	return &testEnv{
		engine:    engine,
		store:     store,
		inventory: inventory,
		notifier:  notif,
		clock:     clock,
	}
}

func openSession(t *testing.T, env *testEnv) *models.SessionResponse {
	t.Helper()
	resp, err := env.engine.Open(context.Background(), &models.OpenSessionRequest{
		UserID:    100,
		CompanyID: 1,
		ServiceID: 1,
	})
	require.NoError(t, err)
	return resp
}

func toEnterDetails(t *testing.T, env *testEnv) *models.SessionResponse {
	t.Helper()
	resp := openSession(t, env)

	resp, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-02",
	})
	require.NoError(t, err)

	resp, err = env.engine.SelectSlot(context.Background(), resp.ID, &models.SelectSlotRequest{
		UserID:    100,
		StartTime: "09:00",
	})
	require.NoError(t, err)

	resp, err = env.engine.SubmitDetails(context.Background(), resp.ID, &models.SubmitDetailsRequest{
		UserID:   100,
		Name:     "Иван Петров",
		Phone:    "+79990001122",
		Document: "AB1234567",
	})
	require.NoError(t, err)
	return resp
}

// Тесты

func TestEngine_Open(t *testing.T) {
	env := newTestEnv()

	resp := openSession(t, env)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.StepSelectDate), resp.Step)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Len(t, resp.Days, 7)
	assert.Len(t, resp.Professionals, 2)
	assert.Empty(t, resp.OpenSlots)
	assert.False(t, resp.RequiresProfessional)

	// Понедельник available, остальные дни blocked
	assert.Equal(t, "2026-03-02", resp.Days[0].Date)
	assert.Equal(t, string(domain.DayAvailable), resp.Days[0].Status)
	assert.Equal(t, string(domain.DayBlocked), resp.Days[1].Status)

	assert.Equal(t, 30*time.Minute, env.store.lastTTL)
}

func TestEngine_Open_CompanyNotFound(t *testing.T) {
	env := newTestEnv()
	env.engine.staffClient.(*fakeStaff).companyErr = staffservice.ErrCompanyNotFound

	_, err := env.engine.Open(context.Background(), &models.OpenSessionRequest{
		UserID:    100,
		CompanyID: 99,
		ServiceID: 1,
	})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestEngine_Open_InactiveService(t *testing.T) {
	env := newTestEnv()
	env.engine.staffClient.(*fakeStaff).service.IsActive = false

	_, err := env.engine.Open(context.Background(), &models.OpenSessionRequest{
		UserID:    100,
		CompanyID: 1,
		ServiceID: 1,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestEngine_Get_AccessDenied(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	_, err := env.engine.Get(context.Background(), resp.ID, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestEngine_Get_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.engine.Get(context.Background(), "missing", 100)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEngine_SelectDate(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	resp, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepSelectTime), resp.Step)
	require.NotNil(t, resp.SelectedDate)
	assert.Equal(t, "2026-03-02", *resp.SelectedDate)
	require.Len(t, resp.OpenSlots, 2)
	assert.Equal(t, "09:00", resp.OpenSlots[0].StartTime)
	assert.Equal(t, "10:00", resp.OpenSlots[1].StartTime)
}

func TestEngine_SelectDate_Blocked(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	// Вторник: шаблонов нет
	_, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-03",
	})
	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestEngine_SelectDate_OutOfWindow(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	// Понедельник следующей недели за горизонтом из 7 дней
	_, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-09",
	})
	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestEngine_SelectDate_BadFormat(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	_, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "02.03.2026",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngine_SelectSlot(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	resp, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-02",
	})
	require.NoError(t, err)

	resp, err = env.engine.SelectSlot(context.Background(), resp.ID, &models.SelectSlotRequest{
		UserID:    100,
		StartTime: "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepEnterDetails), resp.Step)
	require.NotNil(t, resp.SelectedSlot)
	assert.Equal(t, "09:00", resp.SelectedSlot.StartTime)
	assert.Equal(t, "10:00", resp.SelectedSlot.EndTime)
}

func TestEngine_SelectSlot_FreshnessCheck(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	resp, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-02",
	})
	require.NoError(t, err)

	// Слот заняли после открытия сессии - снапшот об этом не знает
	env.inventory.add(&domain.CalendarEntry{
		CompanyID: 1,
		ServiceID: 1,
		Date:      monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    domain.StatusBooked,
	})

	_, err = env.engine.SelectSlot(context.Background(), resp.ID, &models.SelectSlotRequest{
		UserID:    100,
		StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestEngine_SelectSlot_BeforeDate(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	_, err := env.engine.SelectSlot(context.Background(), resp.ID, &models.SelectSlotRequest{
		UserID:    100,
		StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEngine_SelectProfessional(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	resp, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-02",
	})
	require.NoError(t, err)

	// Выбор мастера не меняет шаг
	resp, err = env.engine.SelectProfessional(context.Background(), resp.ID, &models.SelectProfessionalRequest{
		UserID:         100,
		ProfessionalID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StepSelectTime), resp.Step)
	require.NotNil(t, resp.SelectedProfessionalID)
	assert.Equal(t, int64(2), *resp.SelectedProfessionalID)
}

func TestEngine_SelectProfessional_Unknown(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	resp, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-02",
	})
	require.NoError(t, err)

	_, err = env.engine.SelectProfessional(context.Background(), resp.ID, &models.SelectProfessionalRequest{
		UserID:         100,
		ProfessionalID: 99,
	})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestEngine_SubmitDetails_Validation(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	resp, err := env.engine.SelectDate(context.Background(), resp.ID, &models.SelectDateRequest{
		UserID: 100,
		Date:   "2026-03-02",
	})
	require.NoError(t, err)
	resp, err = env.engine.SelectSlot(context.Background(), resp.ID, &models.SelectSlotRequest{
		UserID:    100,
		StartTime: "09:00",
	})
	require.NoError(t, err)

	// Пустое имя
	_, err = env.engine.SubmitDetails(context.Background(), resp.ID, &models.SubmitDetailsRequest{
		UserID:   100,
		Name:     "  ",
		Phone:    "+79990001122",
		Document: "AB1234567",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Некорректный email
	email := "not-an-email"
	_, err = env.engine.SubmitDetails(context.Background(), resp.ID, &models.SubmitDetailsRequest{
		UserID:   100,
		Name:     "Иван",
		Phone:    "+79990001122",
		Document: "AB1234567",
		Email:    &email,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngine_SubmitDetails(t *testing.T) {
	env := newTestEnv()
	resp := toEnterDetails(t, env)

	assert.Equal(t, string(domain.StepEnterDetails), resp.Step)
	assert.True(t, resp.DetailsSubmitted)
}

func TestEngine_Confirm(t *testing.T) {
	env := newTestEnv()
	resp := toEnterDetails(t, env)

	resp, err := env.engine.Confirm(context.Background(), resp.ID, 100)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepCompleted), resp.Step)
	require.NotNil(t, resp.BookingID)

	// Запись появилась в календаре
	entries, err := env.inventory.GetByCompanyAndDate(context.Background(), 1, monday)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusBooked, entries[0].Status)
	assert.Equal(t, types.TimeString("09:00"), entries[0].StartTime)
	assert.Equal(t, "Иван Петров", entries[0].ClientName)
	assert.Equal(t, domain.UnassignedProfessionalID, entries[0].ProfessionalID)

	// Уведомление ушло после коммита
	select {
	case n := <-env.notifier.sent:
		assert.Equal(t, entries[0].ID, n.EntryID)
		assert.Equal(t, "Стрижка", n.ServiceName)
		assert.Equal(t, "2026-03-02", n.Date)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

func TestEngine_Confirm_Conflict(t *testing.T) {
	env := newTestEnv()
	resp := toEnterDetails(t, env)

	// Параллельная сессия заняла слот между вводом данных и подтверждением
	env.inventory.add(&domain.CalendarEntry{
		CompanyID: 1,
		ServiceID: 1,
		Date:      monday,
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    domain.StatusBooked,
	})

	refreshed, err := env.engine.Confirm(context.Background(), resp.ID, 100)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Вместе с ошибкой возвращается обновленное состояние сессии
	require.NotNil(t, refreshed)
	assert.Equal(t, string(domain.StepSelectTime), refreshed.Step)
	assert.Nil(t, refreshed.SelectedSlot)
	assert.Nil(t, refreshed.BookingID)

	// Проигранный слот исключен из выдачи, второй слот остается
	require.Len(t, refreshed.OpenSlots, 1)
	assert.Equal(t, "10:00", refreshed.OpenSlots[0].StartTime)

	// Повторный выбор проигранного слота невозможен
	_, err = env.engine.SelectSlot(context.Background(), resp.ID, &models.SelectSlotRequest{
		UserID:    100,
		StartTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestEngine_Confirm_RequiresProfessional(t *testing.T) {
	env := newTestEnv()
	env.engine.configService.(*fakeResolver).config.RequiresProfessional = true

	resp := toEnterDetails(t, env)

	// Мастер не выбран - подтверждение отклоняется
	_, err := env.engine.Confirm(context.Background(), resp.ID, 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// После выбора мастера подтверждение проходит
	_, err = env.engine.SelectProfessional(context.Background(), resp.ID, &models.SelectProfessionalRequest{
		UserID:         100,
		ProfessionalID: 1,
	})
	require.NoError(t, err)

	confirmed, err := env.engine.Confirm(context.Background(), resp.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StepCompleted), confirmed.Step)

	entries, err := env.inventory.GetByCompanyAndDate(context.Background(), 1, monday)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ProfessionalID)

	<-env.notifier.sent
}

func TestEngine_Confirm_WrongStep(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	_, err := env.engine.Confirm(context.Background(), resp.ID, 100)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEngine_Cancel(t *testing.T) {
	env := newTestEnv()
	resp := openSession(t, env)

	require.NoError(t, env.engine.Cancel(context.Background(), resp.ID, 100))

	_, err := env.engine.Get(context.Background(), resp.ID, 100)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEngine_Cancel_Completed(t *testing.T) {
	env := newTestEnv()
	resp := toEnterDetails(t, env)

	_, err := env.engine.Confirm(context.Background(), resp.ID, 100)
	require.NoError(t, err)
	<-env.notifier.sent

	err = env.engine.Cancel(context.Background(), resp.ID, 100)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
