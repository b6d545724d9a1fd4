package create_booking

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден или неактивен
	ErrBarberNotFound = errors.New("barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrDateInPast возвращается, когда дата бронирования уже прошла
	ErrDateInPast = errors.New("date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrBarberUnavailable возвращается, когда барбер не работает в эту дату
	ErrBarberUnavailable = errors.New("barber is not available on this date")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается в рабочие интервалы
	ErrOutsideWorkingHours = errors.New("time is outside working hours")

	// ErrNotOnGrid возвращается, когда время начала не лежит на сетке слотов
	ErrNotOnGrid = errors.New("time is not aligned to the slot grid")

	// ErrTooLateToBook возвращается, когда слот начинается раньше минимального буфера
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrSlotTaken возвращается, когда слот пересекается с существующим бронированием
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
