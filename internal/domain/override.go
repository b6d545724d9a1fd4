package domain

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// DayOverride исключение из обычного недельного графика на конкретную дату
// Либо полное закрытие, либо замена часов первой смены.
// BarberID == nil означает, что исключение действует на весь барбершоп
type DayOverride struct {
	ID       int64
	BarberID *int64
	Date     time.Time
	Closed   bool

	// Замена границ первой смены (только если Closed == false)
	StartTime *types.TimeString
	EndTime   *types.TimeString

	Reason    *string
	CreatedAt time.Time
}

// AppliesToBarber возвращает true, если исключение касается указанного барбера
func (o *DayOverride) AppliesToBarber(barberID int64) bool {
	return o.BarberID == nil || *o.BarberID == barberID
}

// IsShopWide возвращает true, если исключение действует на весь барбершоп
func (o *DayOverride) IsShopWide() bool {
	return o.BarberID == nil
}

// HasReplacementHours возвращает true, если исключение задаёт замену часов
func (o *DayOverride) HasReplacementHours() bool {
	return !o.Closed && o.StartTime != nil && o.EndTime != nil
}
