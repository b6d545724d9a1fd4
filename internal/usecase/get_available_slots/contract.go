package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/availability"
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает бронирования по фильтру (барбер + дата)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// OverrideRepository интерфейс репозитория исключений из графика
type OverrideRepository interface {
	GetForBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.DayOverride, error)
}

// SettingsRepository интерфейс репозитория настроек барбершопа
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
}

// ScheduleResolver интерфейс резолвера рабочих интервалов барбера на дату
type ScheduleResolver interface {
	Resolve(barber *domain.Barber, settings *domain.BusinessSettings, overrides []*domain.DayOverride, date time.Time) availability.WorkingDay
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
