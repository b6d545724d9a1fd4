package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	clientRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/client"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	overrideRepo OverrideRepository
	settingsRepo SettingsRepository
	resolver     ScheduleResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	location     *time.Location
	leadMinutes  int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	overrideRepo OverrideRepository,
	settingsRepo SettingsRepository,
	resolver ScheduleResolver,
	txManager TransactionManager,
	logger Logger,
	location *time.Location,
	leadMinutes int,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		overrideRepo: overrideRepo,
		settingsRepo: settingsRepo,
		resolver:     resolver,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		location:     location,
		leadMinutes:  leadMinutes,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности слота и вставка выполняются в сериализуемой транзакции:
// два конкурирующих запроса на один слот не могут пройти проверку одновременно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: barber=%d, service=%d, date=%s, time=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и дата запроса в часовом поясе барбершопа
	now := uc.timeProvider.Now().In(uc.location)
	reqDate := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	// 3. Получаем барбера: неактивный барбер недоступен для записи
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.Active {
		uc.logger.Warn("CreateBooking: barber id=%d is inactive", req.BarberID)
		return nil, ErrBarberNotFound
	}

	// 4. Получаем услугу: длительность определяет конец слота
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Вычисляем границы слота в минутах
	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		// Конец слота перевалил за полночь
		uc.logger.Warn("CreateBooking: slot %s+%dmin crosses midnight", req.StartTime, service.DurationMinutes)
		return nil, ErrOutsideWorkingHours
	}
	endMin := startMin + service.DurationMinutes

	var result *domain.Booking

	// 6. Проверка доступности и вставка атомарно, в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Настройки барбершопа
		settings, err := uc.settingsRepo.Get(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		// 6.2. Валидация даты с учетом горизонта бронирования
		if err := validateDate(reqDate, now, settings.MaxAdvanceDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 6.3. Резолвим рабочие интервалы барбера на дату
		overrides, err := uc.overrideRepo.GetForBarberAndDate(txCtx, req.BarberID, reqDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overrides: %v", err)
			return fmt.Errorf("%w: failed to get day overrides: %v", ErrInternal, err)
		}

		workingDay := uc.resolver.Resolve(barber, settings, overrides, reqDate)
		if workingDay.Closed || len(workingDay.Intervals) == 0 {
			uc.logger.Warn("CreateBooking: barber=%d is not working on %s",
				req.BarberID, req.Date.Format(domain.DateFormat))
			return ErrBarberUnavailable
		}

		// 6.4. Слот должен лежать на сетке и помещаться в рабочий интервал
		if err := validateSlotPlacement(workingDay.Intervals, startMin, endMin, settings.SlotIntervalMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot placement validation failed: %v", err)
			return err
		}

		// 6.5. Минимальный буфер для сегодняшних слотов
		if err := validateLeadTime(reqDate, startMin, now, uc.leadMinutes); err != nil {
			uc.logger.Warn("CreateBooking: lead time validation failed: %v", err)
			return err
		}

		// 6.6. Активные бронирования барбера на дату, с блокировкой строк
		filter := domain.BookingsFilter{
			BarberID:  &req.BarberID,
			StartDate: &reqDate,
			EndDate:   &reqDate,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.7. Повторная проверка пересечений: слот мог быть занят после показа клиенту
		if taken := findOverlap(bookings, startMin, endMin); taken != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s overlaps booking id=%d",
				req.StartTime, endTime, taken.ID)
			return ErrSlotTaken
		}

		// 6.8. Находим или создаем клиента по телефону или email
		bookingClient, err := uc.findOrCreateClient(txCtx, req)
		if err != nil {
			return err
		}

		// 6.9. Создаем бронирование с денормализацией данных клиента и услуги
		booking := &domain.Booking{
			ClientID:  &bookingClient.ID,
			BarberID:  req.BarberID,
			ServiceID: req.ServiceID,
			Date:      reqDate,
			StartTime: req.StartTime,
			EndTime:   endTime,
			Status:    domain.StatusConfirmed,

			ClientName:   strings.TrimSpace(req.ClientName),
			ClientEmail:  req.ClientEmail,
			ClientPhone:  strings.TrimSpace(req.ClientPhone),
			ServiceName:  service.Name,
			ServicePrice: service.Price,

			Notes: req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for barber=%d at %s %s",
		result.ID, result.BarberID, result.Date.Format(domain.DateFormat), result.StartTime)

	return toResponse(result), nil
}

// findOrCreateClient ищет клиента по контактам и обновляет их,
// либо создает нового клиента при первом визите
func (uc *UseCase) findOrCreateClient(ctx context.Context, req *Request) (*domain.Client, error) {
	phone := strings.TrimSpace(req.ClientPhone)
	name := strings.TrimSpace(req.ClientName)

	existing, err := uc.clientRepo.FindByPhoneOrEmail(ctx, phone, req.ClientEmail)
	if err != nil && !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("CreateBooking: failed to find client: %v", err)
		return nil, fmt.Errorf("%w: failed to find client: %v", ErrInternal, err)
	}

	if existing != nil {
		if err := uc.clientRepo.UpdateContact(ctx, existing.ID, name, req.ClientEmail, phone); err != nil {
			uc.logger.Error("CreateBooking: failed to update client id=%d: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: failed to update client: %v", ErrInternal, err)
		}
		uc.logger.Info("CreateBooking: reusing client id=%d", existing.ID)
		return existing, nil
	}

	created, err := uc.clientRepo.Create(ctx, &domain.Client{
		Name:  name,
		Email: req.ClientEmail,
		Phone: phone,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create client: %v", err)
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created new client id=%d", created.ID)
	return created, nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		ClientID:     b.ClientID,
		BarberID:     b.BarberID,
		ServiceID:    b.ServiceID,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		ClientName:   b.ClientName,
		ClientEmail:  b.ClientEmail,
		ClientPhone:  b.ClientPhone,
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
