package domain

// Дефолтные значения настроек барбершопа
const (
	DefaultOpeningTime         = "09:00"
	DefaultClosingTime         = "19:00"
	DefaultSlotIntervalMinutes = 30
	DefaultMaxAdvanceDays      = 30
)

// Ограничения бизнес-валидации
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MinAdvanceDays         = 1
	MaxAdvanceDays         = 365

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480

	MinClientNameLength = 2
	MaxNotesLength      = 500
)

// Форматы времени на границе API
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы бронирований, не занимающих время барбера
// Используются при фильтрации для подсчёта занятости слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы бронирований, занимающих время барбера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
