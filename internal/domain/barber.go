package domain

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Barber барбер с индивидуальным недельным графиком
// Часы барбера, если заданы, полностью заменяют часы барбершопа (не объединяются)
type Barber struct {
	ID       int64
	Name     string
	Email    *string
	Phone    *string
	PhotoURL *string

	// Первая смена. Пустые значения - барбер работает по часам барбершопа
	StartTime types.TimeString
	EndTime   types.TimeString

	// Вторая смена для разрывного графика (опционально)
	SecondStartTime *types.TimeString
	SecondEndTime   *types.TimeString

	// Дни недели, в которые барбер работает: 0=воскресенье .. 6=суббота
	WorkDays []int

	Active bool
	Color  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorksOn возвращает true, если барбер работает в указанный день недели
func (b *Barber) WorksOn(weekday time.Weekday) bool {
	for _, d := range b.WorkDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// HasOwnHours возвращает true, если у барбера задан собственный график первой смены
func (b *Barber) HasOwnHours() bool {
	return !b.StartTime.IsZero() && !b.EndTime.IsZero()
}

// HasSecondShift возвращает true, если у барбера задана вторая смена
func (b *Barber) HasSecondShift() bool {
	return b.SecondStartTime != nil && b.SecondEndTime != nil &&
		!b.SecondStartTime.IsZero() && !b.SecondEndTime.IsZero()
}
