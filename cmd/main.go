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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookingSessionHandler "github.com/m04kA/SMC-SalonClient/internal/api/handlers/booking_session"
	bookingStepsHandler "github.com/m04kA/SMC-SalonClient/internal/api/handlers/booking_steps"
	confirmBookingHandler "github.com/m04kA/SMC-SalonClient/internal/api/handlers/confirm_booking"
	reviewDraftHandler "github.com/m04kA/SMC-SalonClient/internal/api/handlers/review_draft"
	submitReviewHandler "github.com/m04kA/SMC-SalonClient/internal/api/handlers/submit_review"
	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/config"
	journalRepo "github.com/m04kA/SMC-SalonClient/internal/infra/storage/journal"
	sessionRepo "github.com/m04kA/SMC-SalonClient/internal/infra/storage/session"
	salonAPIClient "github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
	bookingFlowService "github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
	reviewsService "github.com/m04kA/SMC-SalonClient/internal/service/reviews"
	submitReviewUC "github.com/m04kA/SMC-SalonClient/internal/usecase/submit_review"
	"github.com/m04kA/SMC-SalonClient/pkg/logger"
	"github.com/m04kA/SMC-SalonClient/pkg/metrics"
)

// Collector общий интерфейс метрик для сервисов, use case и middleware
type Collector interface {
	ObserveHTTPRequest(method, route string, status int, seconds float64)
	ObserveReviewWrite(targetType string, ok bool)
	ObserveReviewSubmission(ok bool)
	ObserveBookingConfirmation(ok bool)
}

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

	log.Info("Starting SMC-SalonClient...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var collector Collector = metrics.Noop{}
	if cfg.Metrics.Enabled {
		collector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище сессий бронирования и черновиков отзывов
	var kv sessionRepo.KV
	switch cfg.Sessions.Backend {
	case config.SessionsBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		kv = sessionRepo.NewRedisKV(redisClient)
		log.Info("Session store: redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	default:
		kv = sessionRepo.NewMemoryKV()
		log.Warn("Session store: in-memory, sessions are lost on restart")
	}

	sessionRepository := sessionRepo.NewRepository(
		kv,
		time.Duration(cfg.Sessions.TTL)*time.Second,
		time.Duration(cfg.Sessions.SubmitLockTimeout)*time.Second,
	)

	// Журнал отправок отзывов (Postgres, опционально)
	var journal submitReviewUC.Journal = journalRepo.Noop{}
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		journal = journalRepo.NewRepository(db)
	} else {
		log.Info("Review submission journal disabled")
	}

	// Инициализируем интеграционного клиента
	salonClient := salonAPIClient.NewClient(
		cfg.SalonAPI.URL,
		time.Duration(cfg.SalonAPI.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (SalonAPI=%s timeout=%ds)", cfg.SalonAPI.URL, cfg.SalonAPI.Timeout)

	// Инициализируем сервисы
	bookingSvc := bookingFlowService.NewService(
		sessionRepository,
		salonClient,
		collector,
		cfg.SalonAPI.NearestSalonID,
		log,
	)
	reviewSvc := reviewsService.NewService(
		sessionRepository,
		salonClient,
		log,
	)

	// Инициализируем use cases
	submitReviewUseCase := submitReviewUC.NewUseCase(
		sessionRepository,
		salonClient,
		journal,
		collector,
		log,
	)

	// Инициализируем handlers
	bookingSession := bookingSessionHandler.NewHandler(bookingSvc, log)
	bookingSteps := bookingStepsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	reviewDraft := reviewDraftHandler.NewHandler(reviewSvc, log)
	submitReview := submitReviewHandler.NewHandler(submitReviewUseCase, log)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.AllowedRoles, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(collector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware)

	// --- Бронирование ---
	api.HandleFunc("/booking-sessions", bookingSession.Start).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Get).Methods(http.MethodGet)
	api.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Abandon).Methods(http.MethodDelete)

	api.HandleFunc("/booking-sessions/{sessionId}/phone", bookingSteps.SubmitPhone).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/salon", bookingSteps.ChooseSalon).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/services/confirm", bookingSteps.ConfirmServices).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/services/{serviceId}/toggle", bookingSteps.ToggleService).Methods(http.MethodPost)
	api.HandleFunc("/booking-sessions/{sessionId}/date", bookingSteps.ChooseDate).Methods(http.MethodPut)
	api.HandleFunc("/booking-sessions/{sessionId}/time", bookingSteps.ChooseTime).Methods(http.MethodPut)

	// Передача выбранного слота во внешний API бронирования
	api.HandleFunc("/booking-sessions/{sessionId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// --- Отзывы ---
	api.HandleFunc("/review-drafts", reviewDraft.Open).Methods(http.MethodPost)
	api.HandleFunc("/review-drafts/{draftId}", reviewDraft.Get).Methods(http.MethodGet)
	api.HandleFunc("/review-drafts/{draftId}", reviewDraft.Update).Methods(http.MethodPut)
	api.HandleFunc("/review-drafts/{draftId}", reviewDraft.Close).Methods(http.MethodDelete)
	api.HandleFunc("/review-drafts/{draftId}/submit", submitReview.Handle).Methods(http.MethodPost)

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
