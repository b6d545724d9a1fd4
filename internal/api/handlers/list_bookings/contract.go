package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-BarbershopService/internal/service/bookings/models"
)

type BookingsService interface {
	GetBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
