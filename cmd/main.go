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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addServiceHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/add_service"
	adminDashboardHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/admin_dashboard"
	bulkUpdateBookingsHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/bulk_update_bookings"
	createBookingHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/create_booking"
	createSnapshotHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/create_snapshot"
	deleteBookingHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/delete_booking"
	exportBackupHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/export_backup"
	getBookingPageHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/get_booking_page"
	getConfirmationHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/get_confirmation"
	getPaymentPageHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/get_payment_page"
	listBookingsHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/list_services"
	listSnapshotsHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/list_snapshots"
	submitPaymentHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/submit_payment"
	updateBookingHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/update_booking"
	updatePaymentStatusHandler "github.com/Fuzuri/CleanIT/internal/api/handlers/update_payment_status"
	"github.com/Fuzuri/CleanIT/internal/api/middleware"
	"github.com/Fuzuri/CleanIT/internal/config"
	"github.com/Fuzuri/CleanIT/internal/infra/seed"
	backupRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/backup"
	bookingRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/booking"
	catalogRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/catalog"
	paymentRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/payment"
	backupService "github.com/Fuzuri/CleanIT/internal/service/backup"
	bookingsService "github.com/Fuzuri/CleanIT/internal/service/bookings"
	catalogService "github.com/Fuzuri/CleanIT/internal/service/catalog"
	createBookingUC "github.com/Fuzuri/CleanIT/internal/usecase/create_booking"
	submitPaymentUC "github.com/Fuzuri/CleanIT/internal/usecase/submit_payment"
	"github.com/Fuzuri/CleanIT/pkg/dbmetrics"
	"github.com/Fuzuri/CleanIT/pkg/logger"
	"github.com/Fuzuri/CleanIT/pkg/metrics"
	"github.com/Fuzuri/CleanIT/pkg/simpletxmanager"
	"github.com/Fuzuri/CleanIT/pkg/txmanager"
)

func main() {
	// Переменные окружения из .env (секреты БД и админки)
	_ = godotenv.Load()

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

	log.Info("Starting CleanIT...")
	log.Info("Configuration loaded from config.toml")

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
		catalogRepository *catalogRepo.Repository
		bookingRepository *bookingRepo.Repository
		paymentRepository *paymentRepo.Repository
		backupRepository  *backupRepo.Repository
	)

	// Интерфейс transaction manager, общий для сервисов и use cases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		backupRepository = backupRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		catalogRepository = catalogRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		backupRepository = backupRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Загружаем каталог услуг из seed-файлов
	seeder := seed.NewSeeder(catalogRepository, txMgr, log)
	if err := seeder.Run(context.Background(), cfg.Catalog); err != nil {
		log.Fatal("Failed to seed catalog: %v", err)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		paymentRepository,
		catalogRepository,
		txMgr,
		log,
	)
	backupSvc := backupService.NewService(
		backupRepository,
		txMgr,
		cfg.Backup.Dir,
		cfg.Backup.MaxSnapshots,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		txMgr,
		log,
	)
	submitPaymentUseCase := submitPaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		cfg.Payments.GCashNumber,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getBookingPage := getBookingPageHandler.NewHandler(catalogSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getPaymentPage := getPaymentPageHandler.NewHandler(bookingsSvc, log)
	submitPayment := submitPaymentHandler.NewHandler(submitPaymentUseCase, log)
	getConfirmation := getConfirmationHandler.NewHandler(bookingsSvc, log)
	adminDashboard := adminDashboardHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingsSvc, log)
	bulkUpdateBookings := bulkUpdateBookingsHandler.NewHandler(bookingsSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	addService := addServiceHandler.NewHandler(catalogSvc, log)
	exportBackup := exportBackupHandler.NewHandler(backupSvc, log)
	createSnapshot := createSnapshotHandler.NewHandler(backupSvc, log)
	listSnapshots := listSnapshotsHandler.NewHandler(backupSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиентский поток бронирования)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Страница бронирования услуги
	api.HandleFunc("/services/{serviceId}/booking-page", getBookingPage.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/services/{serviceId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Страница оплаты и отправка платежа
	api.HandleFunc("/bookings/{bookingId}/payment", getPaymentPage.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/payment", submitPayment.Handle).Methods(http.MethodPost)

	// Подтверждение бронирования
	api.HandleFunc("/bookings/{bookingId}/confirmation", getConfirmation.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (за HTTP Basic аутентификацией)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.BasicAuth(cfg.Admin.Username, cfg.Admin.Password))

	// Дашборд со сводкой
	admin.HandleFunc("/dashboard", adminDashboard.Handle).Methods(http.MethodGet)

	// Управление бронированиями
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/bulk", bulkUpdateBookings.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/payment-status", updatePaymentStatus.Handle).Methods(http.MethodPost)

	// Каталог
	admin.HandleFunc("/services", addService.Handle).Methods(http.MethodPost)

	// Резервное копирование
	admin.HandleFunc("/backup/export", exportBackup.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/backup/snapshots", createSnapshot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/backup/snapshots", listSnapshots.Handle).Methods(http.MethodGet)

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

	log.Info("Server exited")
}
