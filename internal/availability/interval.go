package availability

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// Interval рабочий интервал [Start, End) в минутах с начала суток
type Interval struct {
	Start int
	End   int
}

// Duration возвращает длину интервала в минутах
func (i Interval) Duration() int {
	return i.End - i.Start
}

// IsValid возвращает true, если начало строго раньше конца
func (i Interval) IsValid() bool {
	return i.Start < i.End
}

// WorkingDay результат резолвинга графика барбера на конкретную дату
type WorkingDay struct {
	Closed bool
	// Intervals 0..2 непересекающихся интервала по возрастанию
	Intervals []Interval
}

// BookedInterval занятый интервал существующего бронирования
type BookedInterval struct {
	Start int
	End   int
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [a0,a1) и [b0,b1)
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func Overlaps(a0, a1, b0, b1 int) bool {
	return a0 < b1 && a1 > b0
}

// WeekdayOf возвращает день недели даты, заякоренной на полдень
// Парсинг даты в полночь при конвертации часовых поясов может уехать на соседний
// день и сдвинуть день недели, полуденный якорь исключает этот сдвиг
func WeekdayOf(date time.Time) time.Weekday {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	return noon.Weekday()
}

// FromBookings конвертирует активные бронирования в занятые интервалы
// Отменённые и неявки пропускаются, бронирования с нечитаемым временем тоже
func FromBookings(bookings []*domain.Booking) []BookedInterval {
	booked := make([]BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		start, err := b.StartTime.Minutes()
		if err != nil {
			continue
		}
		end, err := b.EndTime.Minutes()
		if err != nil {
			continue
		}
		booked = append(booked, BookedInterval{Start: start, End: end})
	}
	return booked
}
