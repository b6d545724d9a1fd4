package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/availability"
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
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

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(strings.TrimSpace(req.ClientName)) < domain.MinClientNameLength {
		return fmt.Errorf("%w: clientName must be at least %d characters", ErrInvalidInput, domain.MinClientNameLength)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
func validateDate(bookingDate time.Time, now time.Time, maxAdvanceDays int) error {
	today := dateOnly(now)
	requested := dateOnly(bookingDate)

	if requested.Before(today) {
		return ErrDateInPast
	}

	maxDate := today.AddDate(0, 0, maxAdvanceDays)
	if requested.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateSlotPlacement проверяет, что слот лежит на сетке и помещается
// целиком в один рабочий интервал барбера
// Сетка отсчитывается от начала каждого интервала с шагом stepMin: слот,
// накрывающий разрыв между сменами, невалиден
func validateSlotPlacement(intervals []availability.Interval, startMin, endMin, stepMin int) error {
	for _, iv := range intervals {
		if startMin < iv.Start || endMin > iv.End {
			continue
		}
		if (startMin-iv.Start)%stepMin != 0 {
			return ErrNotOnGrid
		}
		return nil
	}
	return ErrOutsideWorkingHours
}

// validateLeadTime проверяет минимальный буфер между "сейчас" и началом слота
// Применяется только к сегодняшней дате
func validateLeadTime(bookingDate time.Time, startMin int, now time.Time, leadMinutes int) error {
	if !isSameDate(bookingDate, now) {
		return nil
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	if startMin < nowMinutes+leadMinutes {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, leadMinutes)
	}

	return nil
}

// findOverlap возвращает первое активное бронирование, пересекающееся со слотом
func findOverlap(bookings []*domain.Booking, startMin, endMin int) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		bookedStart, err := b.StartTime.Minutes()
		if err != nil {
			continue
		}
		bookedEnd, err := b.EndTime.Minutes()
		if err != nil {
			continue
		}

		if availability.Overlaps(startMin, endMin, bookedStart, bookedEnd) {
			return b
		}
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
