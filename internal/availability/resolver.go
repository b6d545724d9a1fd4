package availability

import (
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Resolver собирает рабочие интервалы барбера на конкретную дату из трёх слоёв:
// общие часы барбершопа, недельный график барбера, исключения на дату.
// Приоритет: часы барбера полностью заменяют часы барбершопа; исключение на дату
// бьёт оба слоя, причем исключение для конкретного барбера бьёт общее для барбершопа
type Resolver struct {
	log Logger
}

// NewResolver создает новый Resolver
func NewResolver(log Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve возвращает рабочие интервалы барбера на дату
// Порядок применения правил:
//  1. Неактивный барбер - закрыто
//  2. День недели не входит в рабочие дни барбера - закрыто
//  3. Первая смена: график барбера, иначе часы барбершопа
//  4. Вторая смена: график барбера, иначе вторая смена барбершопа, иначе нет
//  5. Исключение на дату: закрытие побеждает всё; замена часов меняет только
//     границы первой смены, вторая смена остаётся в силе
//  6. Вторая смена, начинающаяся не строго после конца первой, отбрасывается
func (r *Resolver) Resolve(
	barber *domain.Barber,
	settings *domain.BusinessSettings,
	overrides []*domain.DayOverride,
	date time.Time,
) WorkingDay {
	if !barber.Active {
		return WorkingDay{Closed: true}
	}

	if !barber.WorksOn(WeekdayOf(date)) {
		return WorkingDay{Closed: true}
	}

	primary, ok := r.resolvePrimaryShift(barber, settings)
	if !ok {
		return WorkingDay{Closed: true}
	}

	second, hasSecond := r.resolveSecondShift(barber, settings)

	if override := pickOverride(overrides, barber.ID); override != nil {
		if override.Closed {
			return WorkingDay{Closed: true}
		}
		// Замена часов действует только на первую смену
		if override.HasReplacementHours() {
			replaced, err := intervalFromTimes(*override.StartTime, *override.EndTime)
			if err != nil {
				r.log.Warn("availability: barber=%d date=%s override has unreadable hours, keeping weekly schedule: %v",
					barber.ID, date.Format(domain.DateFormat), err)
			} else {
				primary = replaced
			}
		}
	}

	intervals := make([]Interval, 0, 2)

	if !primary.IsValid() {
		r.log.Warn("availability: barber=%d date=%s primary shift %d-%d is malformed (start >= end), skipping",
			barber.ID, date.Format(domain.DateFormat), primary.Start, primary.End)
	} else {
		intervals = append(intervals, primary)
	}

	if hasSecond {
		switch {
		case !second.IsValid():
			r.log.Warn("availability: barber=%d date=%s second shift %d-%d is malformed (start >= end), dropping",
				barber.ID, date.Format(domain.DateFormat), second.Start, second.End)
		case len(intervals) > 0 && second.Start <= intervals[0].End:
			// Вторая смена обязана начинаться строго после конца первой,
			// иначе интервалы наложатся друг на друга
			r.log.Warn("availability: barber=%d date=%s second shift starts at %d, not after primary end %d, dropping",
				barber.ID, date.Format(domain.DateFormat), second.Start, intervals[0].End)
		default:
			intervals = append(intervals, second)
		}
	}

	return WorkingDay{Intervals: intervals}
}

// resolvePrimaryShift возвращает первую смену: график барбера, иначе часы барбершопа
func (r *Resolver) resolvePrimaryShift(barber *domain.Barber, settings *domain.BusinessSettings) (Interval, bool) {
	if barber.HasOwnHours() {
		interval, err := intervalFromTimes(barber.StartTime, barber.EndTime)
		if err != nil {
			r.log.Warn("availability: barber=%d has unreadable own hours, falling back to shop hours: %v", barber.ID, err)
		} else {
			return interval, true
		}
	}

	interval, err := intervalFromTimes(settings.OpeningTime, settings.ClosingTime)
	if err != nil {
		r.log.Warn("availability: shop opening hours are unreadable: %v", err)
		return Interval{}, false
	}
	return interval, true
}

// resolveSecondShift возвращает вторую смену: график барбера, иначе барбершопа
func (r *Resolver) resolveSecondShift(barber *domain.Barber, settings *domain.BusinessSettings) (Interval, bool) {
	if barber.HasSecondShift() {
		interval, err := intervalFromTimes(*barber.SecondStartTime, *barber.SecondEndTime)
		if err != nil {
			r.log.Warn("availability: barber=%d has unreadable second shift, dropping: %v", barber.ID, err)
			return Interval{}, false
		}
		return interval, true
	}

	if settings.HasSecondShift() {
		interval, err := intervalFromTimes(*settings.SecondOpeningTime, *settings.SecondClosingTime)
		if err != nil {
			r.log.Warn("availability: shop second shift is unreadable, dropping: %v", err)
			return Interval{}, false
		}
		return interval, true
	}

	return Interval{}, false
}

// pickOverride выбирает действующее исключение на дату
// Исключение для конкретного барбера имеет приоритет над общим для барбершопа
func pickOverride(overrides []*domain.DayOverride, barberID int64) *domain.DayOverride {
	var shopWide *domain.DayOverride
	for _, o := range overrides {
		if o.BarberID != nil && *o.BarberID == barberID {
			return o
		}
		if o.IsShopWide() && shopWide == nil {
			shopWide = o
		}
	}
	return shopWide
}

func intervalFromTimes(start, end types.TimeString) (Interval, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return Interval{}, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: startMin, End: endMin}, nil
}
