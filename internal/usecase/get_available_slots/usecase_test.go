package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/availability"
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

type fakeBarberRepo struct {
	barber *domain.Barber
	err    error
}

func (f *fakeBarberRepo) GetByID(_ context.Context, _ int64) (*domain.Barber, error) {
	return f.barber, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeOverrideRepo struct {
	overrides []*domain.DayOverride
	err       error
}

func (f *fakeOverrideRepo) GetForBarberAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DayOverride, error) {
	return f.overrides, f.err
}

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
	err      error
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.BusinessSettings, error) {
	return f.settings, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testSettings() *domain.BusinessSettings {
	return &domain.BusinessSettings{
		OpeningTime:         "09:00",
		ClosingTime:         "19:00",
		SlotIntervalMinutes: 30,
		MaxAdvanceDays:      30,
	}
}

func testBarber() *domain.Barber {
	return &domain.Barber{
		ID:       1,
		Name:     "Carlos",
		WorkDays: []int{1, 2, 3, 4, 5, 6},
		Active:   true,
	}
}

func testService() *domain.Service {
	return &domain.Service{
		ID:              2,
		Name:            "Corte de pelo",
		DurationMinutes: 30,
		Price:           15,
		Active:          true,
	}
}

func newTestUseCase(
	barbers *fakeBarberRepo,
	services *fakeServiceRepo,
	bookings *fakeBookingRepo,
	overrides *fakeOverrideRepo,
	settings *fakeSettingsRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		barbers,
		services,
		bookings,
		overrides,
		settings,
		availability.NewResolver(noopLogger{}),
		noopLogger{},
		time.UTC,
		30,
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

// Понедельник 2026-09-07, запрос на вторник 2026-09-08
var (
	testNow  = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
)

func TestExecute_FullDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: testDate})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	// 09:00..18:30, 30-минутная сетка при 30-минутной услуге
	assert.Len(t, resp.Slots, 20)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("18:30"), resp.Slots[len(resp.Slots)-1])
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	booked := &domain.Booking{
		BarberID:  1,
		Status:    domain.StatusConfirmed,
		StartTime: "10:00",
		EndTime:   "10:30",
	}

	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{bookings: []*domain.Booking{booked}},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: testDate})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 19)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("09:30"))
	assert.Contains(t, resp.Slots, types.TimeString("10:30"))
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	cancelled := &domain.Booking{
		BarberID:  1,
		Status:    domain.StatusCancelled,
		StartTime: "10:00",
		EndTime:   "10:30",
	}

	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{bookings: []*domain.Booking{cancelled}},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: testDate})
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, types.TimeString("10:00"))
}

func TestExecute_ClosedDay(t *testing.T) {
	barber := testBarber()
	// Воскресенье не входит в рабочие дни
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBarberRepo{barber: barber},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: sunday})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
	assert.NotEmpty(t, resp.Message)
}

func TestExecute_ClosedByOverride(t *testing.T) {
	override := &domain.DayOverride{
		ID:     1,
		Date:   testDate,
		Closed: true,
	}

	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{overrides: []*domain.DayOverride{override}},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: testDate})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayLeadTime(t *testing.T) {
	// Сейчас 14:40, буфер 30 минут: первый доступный слот 15:30
	now := time.Date(2026, 9, 7, 14, 40, 0, 0, time.UTC)
	today := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: today})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("15:30"), resp.Slots[0])
}

func TestExecute_BarberNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{err: barberRepo.ErrBarberNotFound},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 99, ServiceID: 2, Date: testDate})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{err: serviceRepo.ErrServiceNotFound},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	service := testService()
	service.Active = false

	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: service},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	yesterday := testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: yesterday})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_DateTooFar(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	farAway := testNow.AddDate(0, 0, 31)
	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2, Date: farAway})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		testNow,
	)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 0, ServiceID: 2, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BarberID: 1, ServiceID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
