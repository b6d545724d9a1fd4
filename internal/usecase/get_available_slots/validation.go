package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
// Сравниваются только календарные даты: сегодняшний день валиден до полуночи
func validateDate(requestDate time.Time, now time.Time, maxAdvanceDays int) error {
	today := dateOnly(now)
	requested := dateOnly(requestDate)

	if requested.Before(today) {
		return ErrDateInPast
	}

	maxDate := today.AddDate(0, 0, maxAdvanceDays)
	if requested.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// dateOnly обнуляет временную часть, сохраняя часовой пояс
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isSameDate сравнивает календарные даты без учета времени
func isSameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
