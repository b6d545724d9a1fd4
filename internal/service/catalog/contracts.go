package catalog

import (
	"context"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	ListActive(ctx context.Context) ([]*domain.Barber, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	ListActive(ctx context.Context) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
