package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BarberID  int64            // ID барбера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота

	// Контактные данные клиента: клиент создается или обновляется автоматически
	ClientName  string
	ClientPhone string
	ClientEmail *string

	Notes *string // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	ClientID  *int64
	BarberID  int64
	ServiceID int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string

	ClientName   string
	ClientEmail  *string
	ClientPhone  string
	ServiceName  string
	ServicePrice float64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
