package domain

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking бронирование клиента у конкретного барбера
// Записи никогда не удаляются физически: отмена - это переход статуса,
// история сохраняется для аналитики по клиентам
type Booking struct {
	ID        int64
	ClientID  *int64
	BarberID  int64
	ServiceID int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	Status BookingStatus

	// Денормализованные данные клиента и услуги на момент бронирования
	ClientName   string
	ClientEmail  *string
	ClientPhone  string
	ServiceName  string
	ServicePrice float64

	Notes        *string
	ReminderSent bool

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает время барбера
// Отменённые и неявки не блокируют слоты
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFinished возвращает true, если бронирование завершено (выполнено или неявка)
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	BarberID        *int64         // Фильтр по барберу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и неявки
}
