package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/availability"
	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

const msgBarberUnavailable = "barber is not available on this date"

// UseCase use case для получения доступных слотов барбера на дату
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
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, service=%d, date=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и дата запроса в часовом поясе барбершопа
	now := uc.timeProvider.Now().In(uc.location)
	reqDate := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	// 3. Настройки барбершопа
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Валидация даты с учетом горизонта бронирования
	if err := validateDate(reqDate, now, settings.MaxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем барбера
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 6. Получаем услугу: длительность определяет размер слота
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 7. Исключения из графика на эту дату
	overrides, err := uc.overrideRepo.GetForBarberAndDate(ctx, req.BarberID, reqDate)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get day overrides: %v", ErrInternal, err)
	}

	// 8. Резолвим рабочие интервалы барбера на дату
	workingDay := uc.resolver.Resolve(barber, settings, overrides, reqDate)
	if workingDay.Closed || len(workingDay.Intervals) == 0 {
		uc.logger.Info("GetAvailableSlots: barber=%d is not working on %s",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            reqDate,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			DurationMinutes: service.DurationMinutes,
			Slots:           []types.TimeString{},
			Closed:          true,
			Message:         msgBarberUnavailable,
		}, nil
	}

	// 9. Активные бронирования барбера на эту дату
	filter := domain.BookingsFilter{
		BarberID:  &req.BarberID,
		StartDate: &reqDate,
		EndDate:   &reqDate,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Генерируем слоты по сетке с учетом занятости и буфера на сегодня
	isToday := isSameDate(reqDate, now)
	nowMinutes := now.Hour()*60 + now.Minute()

	startMinutes := availability.Generate(
		workingDay.Intervals,
		service.DurationMinutes,
		settings.SlotIntervalMinutes,
		availability.FromBookings(bookings),
		isToday,
		nowMinutes,
		uc.leadMinutes,
	)

	slots := make([]types.TimeString, 0, len(startMinutes))
	for _, m := range startMinutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: skipping slot at minute %d: %v", m, err)
			continue
		}
		slots = append(slots, ts)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for barber=%d, service=%d, date=%s",
		len(slots), req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            reqDate,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
