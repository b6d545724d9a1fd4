package availability

import "sort"

// Generate возвращает отсортированный список доступных стартовых минут слотов
//
// Кандидаты идут по сетке от начала каждого рабочего интервала с шагом stepMin;
// кандидат, чей конец (start + durationMin) вылезает за конец интервала, не
// порождается. Для сегодняшней даты кандидаты раньше nowMin + leadMin
// отбрасываются. Кандидат, пересекающийся хотя бы с одним занятым интервалом,
// отбрасывается. Интервалы обрабатываются независимо: слот не может накрыть
// разрыв между сменами.
//
// Функция чистая и детерминированная: при одинаковых входах (включая nowMin)
// результат всегда одинаков и одинаково упорядочен
func Generate(
	intervals []Interval,
	durationMin int,
	stepMin int,
	booked []BookedInterval,
	isToday bool,
	nowMin int,
	leadMin int,
) []int {
	slots := make([]int, 0)

	if durationMin <= 0 || stepMin <= 0 {
		return slots
	}

	minStart := nowMin + leadMin

	for _, interval := range intervals {
		for start := interval.Start; start+durationMin <= interval.End; start += stepMin {
			if isToday && start < minStart {
				continue
			}

			end := start + durationMin

			free := true
			for _, b := range booked {
				if Overlaps(start, end, b.Start, b.End) {
					free = false
					break
				}
			}

			if free {
				slots = append(slots, start)
			}
		}
	}

	// Конкатенация по интервалам уже даёт возрастающий порядок, но вызывающие
	// не должны зависеть от этого побочного свойства
	sort.Ints(slots)

	return slots
}
