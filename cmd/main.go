package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/create_booking"
	findNextSlotsHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/find_next_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/get_booking"
	listBarbersHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/list_barbers"
	listBookingsHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/list_services"
	updateBookingStatusHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-BarbershopService/internal/api/middleware"
	"github.com/m04kA/SMC-BarbershopService/internal/availability"
	"github.com/m04kA/SMC-BarbershopService/internal/config"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	bookingRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/client"
	overrideRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/override"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/settings"
	bookingsService "github.com/m04kA/SMC-BarbershopService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-BarbershopService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-BarbershopService/internal/usecase/create_booking"
	findNextSlotsUC "github.com/m04kA/SMC-BarbershopService/internal/usecase/find_next_slots"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarbershopService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
	"github.com/m04kA/SMC-BarbershopService/pkg/metrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BarbershopService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BarbershopService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс барбершопа: все даты и времена интерпретируются в нём
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Barbershop timezone: %s", cfg.Booking.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		barbers   *barberRepo.Repository
		services  *serviceRepo.Repository
		bookings  *bookingRepo.Repository
		clients   *clientRepo.Repository
		overrides *overrideRepo.Repository
		settings  *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		barbers = barberRepo.NewRepository(wrappedDB)
		services = serviceRepo.NewRepository(wrappedDB)
		bookings = bookingRepo.NewRepository(wrappedDB)
		clients = clientRepo.NewRepository(wrappedDB)
		overrides = overrideRepo.NewRepository(wrappedDB)
		settings = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		barbers = barberRepo.NewRepository(db)
		services = serviceRepo.NewRepository(db)
		bookings = bookingRepo.NewRepository(db)
		clients = clientRepo.NewRepository(db)
		overrides = overrideRepo.NewRepository(db)
		settings = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Резолвер расписания барбера на дату
	resolver := availability.NewResolver(log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookings, log)
	catalogSvc := catalogService.NewService(barbers, services, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		barbers,
		services,
		bookings,
		overrides,
		settings,
		resolver,
		log,
		location,
		cfg.Booking.LeadMinutes,
	)

	findNextSlotsUseCase := findNextSlotsUC.NewUseCase(
		barbers,
		services,
		bookings,
		overrides,
		settings,
		resolver,
		log,
		location,
		cfg.Booking.LeadMinutes,
		cfg.Booking.NextSlotsPageSize,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		clients,
		barbers,
		services,
		overrides,
		settings,
		resolver,
		txMgr,
		log,
		location,
		cfg.Booking.LeadMinutes,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	findNextSlots := findNextSlotsHandler.NewHandler(findNextSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	listBarbers := listBarbersHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиентская запись, без аутентификации)
	// ============================================================

	// Каталог барберов и услуг
	api.HandleFunc("/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Свободные слоты барбера на дату
	api.HandleFunc("/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайшие свободные слоты по всем барберам
	api.HandleFunc("/next-slots", findNextSlots.Handle).Methods(http.MethodGet)

	// Создание записи
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (админка, требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Список записей с фильтрами
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса записи
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
