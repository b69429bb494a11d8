package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/config"
	"github.com/floreser/school-portal/internal/delivery/httpd"
	"github.com/floreser/school-portal/internal/repository"
	"github.com/floreser/school-portal/internal/service"
	"github.com/floreser/school-portal/internal/service/integration"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *sql.DB
	redis     *redis.Client
	publisher integration.Publisher
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	// Session storage: redis when configured, in-process memory otherwise.
	var redisClient *redis.Client
	var sessions service.SessionStore
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Error().Err(err).Msg("Failed to ping Redis, falling back to in-memory sessions")
			redisClient = nil
			sessions = service.NewMemorySessionStore()
		} else {
			sessions = service.NewRedisSessionStore(redisClient)
		}
	} else {
		sessions = service.NewMemorySessionStore()
	}

	var archive repository.ArchiveRepository
	if cfg.Storage.Enabled {
		minioRepo, err := repository.NewMinIORepository(
			cfg.Storage.Endpoint,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.Bucket,
			cfg.Storage.UseSSL,
			log,
		)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create MinIO client")
			// Exports still work, they just are not archived.
		} else {
			archive = minioRepo
		}
	}

	publisher, err := integration.NewRabbitMQPublisher(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RoutingKey,
		cfg.RabbitMQ.QueueName,
		log,
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ publisher")
		// Continue without RabbitMQ, saves just are not announced.
		publisher = nil
	}

	studentRepo := repository.NewStudentRepository(db, log)
	subjectRepo := repository.NewSubjectRepository(db, log)
	progressRepo := repository.NewProgressRepository(db, log)
	scheduleRepo := repository.NewScheduleRepository(db, log)

	authService := service.NewAuthService(
		studentRepo,
		progressRepo,
		sessions,
		cfg.Auth.TeacherPassword,
		cfg.Auth.SessionTTL,
		log,
	)
	rosterService := service.NewRosterService(studentRepo, subjectRepo, log)
	progressService := service.NewProgressService(
		progressRepo,
		studentRepo,
		subjectRepo,
		publisher,
		log,
	)
	scheduleService := service.NewScheduleService(scheduleRepo, log)
	exportService := service.NewExportService(scheduleRepo, archive, log)

	handler := httpd.NewHandler(
		authService,
		rosterService,
		progressService,
		scheduleService,
		exportService,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpd.RequestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        db,
		redis:     redisClient,
		publisher: publisher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting school portal on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down school portal...")

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
