package find_next_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/availability"
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// candidate внутреннее представление найденного слота до конвертации в Slot
type candidate struct {
	date       time.Time
	minute     int
	barberID   int64
	barberName string
}

// UseCase use case поиска ближайших свободных слотов по всем барберам
type UseCase struct {
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	overrideRepo OverrideRepository
	settingsRepo SettingsRepository
	resolver     ScheduleResolver
	timeProvider TimeProvider
	logger       Logger
	location     *time.Location
	leadMinutes  int
	pageSize     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	overrideRepo OverrideRepository,
	settingsRepo SettingsRepository,
	resolver ScheduleResolver,
	logger Logger,
	location *time.Location,
	leadMinutes int,
	pageSize int,
) *UseCase {
	return &UseCase{
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
		overrideRepo: overrideRepo,
		settingsRepo: settingsRepo,
		resolver:     resolver,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		location:     location,
		leadMinutes:  leadMinutes,
		pageSize:     pageSize,
	}
}

// Execute выполняет поиск ближайших свободных слотов
//
// Дни горизонта перебираются от сегодняшнего по возрастанию, внутри дня слоты
// сортируются по времени, при равенстве - по ID барбера. Перебор останавливается,
// как только собрано skip + pageSize + 1 кандидатов: лишний кандидат нужен
// только для вычисления HasMore
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindNextSlots: service=%d, barber=%v, skip=%d", req.ServiceID, req.BarberID, req.Skip)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindNextSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе барбершопа
	now := uc.timeProvider.Now().In(uc.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.location)
	nowMinutes := now.Hour()*60 + now.Minute()

	// 3. Настройки барбершопа: горизонт и шаг сетки
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("FindNextSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("FindNextSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("FindNextSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("FindNextSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Барберы для поиска: один из фильтра или все активные
	barbers, err := uc.resolveBarbers(ctx, req.BarberID)
	if err != nil {
		return nil, err
	}

	if len(barbers) == 0 {
		uc.logger.Info("FindNextSlots: no active barbers, returning empty page")
		return &Response{ServiceID: req.ServiceID, Slots: []Slot{}}, nil
	}

	// 6. Перебираем дни горизонта, пока не наберём страницу с запасом в один слот
	limit := req.Skip + uc.pageSize + 1
	collected := make([]candidate, 0, limit)

	for offset := 0; offset <= settings.MaxAdvanceDays && len(collected) < limit; offset++ {
		date := today.AddDate(0, 0, offset)
		isToday := offset == 0

		dayCandidates := uc.collectDay(ctx, barbers, service, settings, date, isToday, nowMinutes)

		// Внутри дня: по времени, при равенстве - по ID барбера
		sort.Slice(dayCandidates, func(i, j int) bool {
			if dayCandidates[i].minute != dayCandidates[j].minute {
				return dayCandidates[i].minute < dayCandidates[j].minute
			}
			return dayCandidates[i].barberID < dayCandidates[j].barberID
		})

		collected = append(collected, dayCandidates...)
	}

	// 7. Вырезаем страницу и считаем HasMore
	hasMore := len(collected) > req.Skip+uc.pageSize

	page := make([]Slot, 0, uc.pageSize)
	for i := req.Skip; i < len(collected) && len(page) < uc.pageSize; i++ {
		c := collected[i]
		ts, err := types.NewTimeStringFromMinutes(c.minute)
		if err != nil {
			uc.logger.Warn("FindNextSlots: skipping slot at minute %d: %v", c.minute, err)
			continue
		}
		page = append(page, Slot{
			Date:       c.date,
			StartTime:  ts,
			BarberID:   c.barberID,
			BarberName: c.barberName,
		})
	}

	uc.logger.Info("FindNextSlots: service=%d, skip=%d, returning %d slots, hasMore=%v",
		req.ServiceID, req.Skip, len(page), hasMore)

	return &Response{
		ServiceID: req.ServiceID,
		Slots:     page,
		HasMore:   hasMore,
	}, nil
}

// resolveBarbers возвращает список барберов для поиска
func (uc *UseCase) resolveBarbers(ctx context.Context, barberID *int64) ([]*domain.Barber, error) {
	if barberID != nil {
		barber, err := uc.barberRepo.GetByID(ctx, *barberID)
		if err != nil {
			if errors.Is(err, barberRepo.ErrBarberNotFound) {
				uc.logger.Warn("FindNextSlots: barber id=%d not found", *barberID)
				return nil, ErrBarberNotFound
			}
			uc.logger.Error("FindNextSlots: failed to get barber id=%d: %v", *barberID, err)
			return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
		}
		return []*domain.Barber{barber}, nil
	}

	barbers, err := uc.barberRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("FindNextSlots: failed to list barbers: %v", err)
		return nil, fmt.Errorf("%w: failed to list barbers: %v", ErrInternal, err)
	}
	return barbers, nil
}

// collectDay собирает свободные слоты всех барберов на одну дату
// Ошибка по паре (дата, барбер) не прерывает поиск: пара пропускается с warn,
// остальные барберы и дни продолжают обрабатываться
func (uc *UseCase) collectDay(
	ctx context.Context,
	barbers []*domain.Barber,
	service *domain.Service,
	settings *domain.BusinessSettings,
	date time.Time,
	isToday bool,
	nowMinutes int,
) []candidate {
	candidates := make([]candidate, 0)

	for _, barber := range barbers {
		overrides, err := uc.overrideRepo.GetForBarberAndDate(ctx, barber.ID, date)
		if err != nil {
			uc.logger.Warn("FindNextSlots: barber=%d date=%s failed to get overrides, skipping: %v",
				barber.ID, date.Format(domain.DateFormat), err)
			continue
		}

		workingDay := uc.resolver.Resolve(barber, settings, overrides, date)
		if workingDay.Closed || len(workingDay.Intervals) == 0 {
			continue
		}

		filter := domain.BookingsFilter{
			BarberID:  &barber.ID,
			StartDate: &date,
			EndDate:   &date,
		}
		bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
		if err != nil {
			uc.logger.Warn("FindNextSlots: barber=%d date=%s failed to get bookings, skipping: %v",
				barber.ID, date.Format(domain.DateFormat), err)
			continue
		}

		startMinutes := availability.Generate(
			workingDay.Intervals,
			service.DurationMinutes,
			settings.SlotIntervalMinutes,
			availability.FromBookings(bookings),
			isToday,
			nowMinutes,
			uc.leadMinutes,
		)

		for _, m := range startMinutes {
			candidates = append(candidates, candidate{
				date:       date,
				minute:     m,
				barberID:   barber.ID,
				barberName: barber.Name,
			})
		}
	}

	return candidates
}
