package domain

import "github.com/m04kA/SMC-BarbershopService/pkg/types"

// BusinessSettings общие настройки барбершопа
// Хранятся в таблице settings парами ключ-значение и собираются в типизированную
// структуру с дефолтами для отсутствующих ключей
type BusinessSettings struct {
	// Часы работы барбершопа - дефолт для барберов без собственного графика
	OpeningTime types.TimeString
	ClosingTime types.TimeString

	// Вторая смена барбершопа (разрывный график), опционально
	SecondOpeningTime *types.TimeString
	SecondClosingTime *types.TimeString

	// Шаг сетки слотов в минутах
	SlotIntervalMinutes int

	// Горизонт бронирования и поиска ближайших слотов в днях
	MaxAdvanceDays int
}

// HasSecondShift возвращает true, если у барбершопа задана вторая смена
func (s *BusinessSettings) HasSecondShift() bool {
	return s.SecondOpeningTime != nil && s.SecondClosingTime != nil &&
		!s.SecondOpeningTime.IsZero() && !s.SecondClosingTime.IsZero()
}
