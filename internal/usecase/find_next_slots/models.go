package find_next_slots

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Request модель запроса на поиск ближайших свободных слотов
type Request struct {
	ServiceID int64  // ID услуги
	BarberID  *int64 // Ограничить поиск одним барбером (опционально)
	Skip      int    // Сколько ближайших слотов пропустить (пагинация)
}

// Response модель ответа со страницей ближайших слотов
type Response struct {
	ServiceID int64  // ID услуги
	Slots     []Slot // Страница ближайших слотов по возрастанию
	HasMore   bool   // Есть ли слоты за пределами страницы
}

// Slot ближайший свободный слот конкретного барбера
type Slot struct {
	Date       time.Time        // Дата слота
	StartTime  types.TimeString // Время начала
	BarberID   int64            // ID барбера
	BarberName string           // Имя барбера
}
