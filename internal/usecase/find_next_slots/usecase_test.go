package find_next_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/availability"
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-BarbershopService/pkg/ptr"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

type fakeBarberRepo struct {
	barbers []*domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	for _, b := range f.barbers {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, barberRepo.ErrBarberNotFound
}

func (f *fakeBarberRepo) ListActive(_ context.Context) ([]*domain.Barber, error) {
	return f.barbers, nil
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeBookingRepo struct {
	// bookings по ключу "barberID/YYYY-MM-DD"
	bookings map[string][]*domain.Booking
	// failFor репозиторий возвращает ошибку для этого барбера
	failFor int64
}

func bookingKey(barberID int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", barberID, date.Format(domain.DateFormat))
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if filter.BarberID != nil && *filter.BarberID == f.failFor && f.failFor != 0 {
		return nil, errors.New("boom")
	}
	if filter.BarberID == nil || filter.StartDate == nil {
		return nil, nil
	}
	return f.bookings[bookingKey(*filter.BarberID, *filter.StartDate)], nil
}

type fakeOverrideRepo struct {
	overrides []*domain.DayOverride
}

func (f *fakeOverrideRepo) GetForBarberAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DayOverride, error) {
	return f.overrides, nil
}

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.BusinessSettings, error) {
	return f.settings, nil
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

// Короткий рабочий день даёт 4 слота на барбера в день: 09:00..10:30
func testSettings() *domain.BusinessSettings {
	return &domain.BusinessSettings{
		OpeningTime:         "09:00",
		ClosingTime:         "11:00",
		SlotIntervalMinutes: 30,
		MaxAdvanceDays:      30,
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

func testBarbers() []*domain.Barber {
	return []*domain.Barber{
		{ID: 1, Name: "Carlos", WorkDays: []int{1, 2, 3, 4, 5}, Active: true},
		{ID: 2, Name: "Miguel", WorkDays: []int{1, 2, 3, 4, 5}, Active: true},
	}
}

func newTestUseCase(
	barbers *fakeBarberRepo,
	services *fakeServiceRepo,
	bookings *fakeBookingRepo,
	now time.Time,
	pageSize int,
) *UseCase {
	uc := NewUseCase(
		barbers,
		services,
		bookings,
		&fakeOverrideRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		availability.NewResolver(noopLogger{}),
		noopLogger{},
		time.UTC,
		30,
		pageSize,
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

// Понедельник, 08:00: утренние слоты ещё не отрезаны буфером
var testNow = time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)

func TestExecute_OrderedByTimeThenBarber(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barbers: testBarbers()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		testNow,
		4,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	// Одно и то же время у двух барберов: сначала меньший ID
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, int64(1), resp.Slots[0].BarberID)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[1].StartTime)
	assert.Equal(t, int64(2), resp.Slots[1].BarberID)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[2].StartTime)
	assert.Equal(t, int64(1), resp.Slots[2].BarberID)
	assert.True(t, resp.HasMore)
}

func TestExecute_Pagination(t *testing.T) {
	barbers := &fakeBarberRepo{barbers: testBarbers()}
	services := &fakeServiceRepo{service: testService()}
	bookings := &fakeBookingRepo{}

	uc := newTestUseCase(barbers, services, bookings, testNow, 3)

	first, err := uc.Execute(context.Background(), &Request{ServiceID: 2, Skip: 0})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{ServiceID: 2, Skip: 3})
	require.NoError(t, err)

	require.Len(t, first.Slots, 3)
	require.Len(t, second.Slots, 3)

	// Вторая страница продолжает первую без пересечений
	assert.Equal(t, types.TimeString("09:30"), second.Slots[0].StartTime)
	assert.Equal(t, int64(2), second.Slots[0].BarberID)

	last := first.Slots[len(first.Slots)-1]
	next := second.Slots[0]
	assert.True(t, !next.Date.Before(last.Date))
}

func TestExecute_HasMoreFalseOnLastPage(t *testing.T) {
	// Барбер без рабочих дней: горизонт не даёт ни одного слота
	barber := &domain.Barber{ID: 1, Name: "Carlos", WorkDays: []int{}, Active: true}

	uc := newTestUseCase(
		&fakeBarberRepo{barbers: []*domain.Barber{barber}},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		testNow,
		5,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.False(t, resp.HasMore)
}

func TestExecute_CrossDaySearch(t *testing.T) {
	// Барбер работает только по вторникам, сегодня понедельник:
	// ближайшие слоты должны прийти с завтрашней даты
	barber := &domain.Barber{ID: 1, Name: "Carlos", WorkDays: []int{2}, Active: true}

	uc := newTestUseCase(
		&fakeBarberRepo{barbers: []*domain.Barber{barber}},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		testNow,
		2,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	tuesday := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, tuesday, resp.Slots[0].Date)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_BookedSlotsSkipped(t *testing.T) {
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	booked := &domain.Booking{
		BarberID:  1,
		Status:    domain.StatusConfirmed,
		StartTime: "09:00",
		EndTime:   "09:30",
	}
	bookings := &fakeBookingRepo{
		bookings: map[string][]*domain.Booking{
			bookingKey(1, monday): {booked},
		},
	}

	uc := newTestUseCase(
		&fakeBarberRepo{barbers: testBarbers()},
		&fakeServiceRepo{service: testService()},
		bookings,
		testNow,
		2,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	// 09:00 занят у первого барбера, но свободен у второго
	assert.Equal(t, int64(2), resp.Slots[0].BarberID)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, int64(1), resp.Slots[1].BarberID)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1].StartTime)
}

func TestExecute_BarberFilter(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barbers: testBarbers()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		testNow,
		4,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2, BarberID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	for _, s := range resp.Slots {
		assert.Equal(t, int64(2), s.BarberID)
	}
}

func TestExecute_BarberFilterNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barbers: testBarbers()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		testNow,
		4,
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 2, BarberID: ptr.Ptr(int64(99))})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_FailedBarberSkipped(t *testing.T) {
	// Ошибка выборки бронирований одного барбера не валит весь поиск
	uc := newTestUseCase(
		&fakeBarberRepo{barbers: testBarbers()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{failFor: 1},
		testNow,
		4,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	for _, s := range resp.Slots {
		assert.Equal(t, int64(2), s.BarberID)
	}
}

func TestExecute_NoActiveBarbers(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		testNow,
		4,
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 2})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.False(t, resp.HasMore)
}

func TestExecute_InactiveService(t *testing.T) {
	service := testService()
	service.Active = false

	uc := newTestUseCase(
		&fakeBarberRepo{barbers: testBarbers()},
		&fakeServiceRepo{service: service},
		&fakeBookingRepo{},
		testNow,
		4,
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 2})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeBarberRepo{barbers: testBarbers()},
		&fakeServiceRepo{service: testService()},
		&fakeBookingRepo{},
		testNow,
		4,
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 2, Skip: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
