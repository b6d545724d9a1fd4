package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarbershopService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarbershopService/pkg/ptr"
)

type fakeBookingRepo struct {
	byID       map[int64]*domain.Booking
	list       []*domain.Booking
	lastFilter domain.BookingsFilter
	cancelled  map[int64]string
	statuses   map[int64]domain.BookingStatus
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:      make(map[int64]*domain.Booking),
		cancelled: make(map[int64]string),
		statuses:  make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		f.byID[b.ID] = b
		f.list = append(f.list, b)
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.list, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	f.statuses[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	now := time.Now()
	b.CancelledAt = &now
	f.cancelled[id] = reason
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		BarberID:    1,
		ServiceID:   2,
		Date:        time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
		Status:      status,
		ClientName:  "Ana Garcia",
		ClientPhone: "+34600111222",
		ServiceName: "Corte de pelo",
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-09-08", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), noopLogger{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBookings_FilterConversion(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	req := &models.GetBookingsRequest{
		BarberID: ptr.Ptr(int64(1)),
		Status:   ptr.Ptr("confirmed"),
	}

	resp, err := svc.GetBookings(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
}

func TestGetBookings_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), noopLogger{})

	req := &models.GetBookingsRequest{Status: ptr.Ptr("unknown")}
	_, err := svc.GetBookings(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "client request"})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "client request", repo.cancelled[1])
	require.NotNil(t, resp.CancellationReason)
}

func TestCancel_FinishedBooking(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusCompleted))
	svc := NewService(repo, noopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "too late"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusCancelled))
	svc := NewService(repo, noopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "again"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, noopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.statuses[1])
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusPending))
	svc := NewService(repo, noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_TerminalStateLocked(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		repo := newFakeBookingRepo(testBooking(1, status))
		svc := NewService(repo, noopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", status)
	}
}

func TestUpdateStatus_NoShow(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, noopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "no_show"})
	require.NoError(t, err)

	assert.Equal(t, "no_show", resp.Status)
}
