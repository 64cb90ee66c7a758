package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/praveenchdev/followup-agent/pkg/validator"

	"github.com/praveenchdev/followup-agent/internal/adapter/handler"
	"github.com/praveenchdev/followup-agent/internal/adapter/repository"
	domainrepo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/internal/infrastructure/cache"
	"github.com/praveenchdev/followup-agent/internal/infrastructure/database"
	"github.com/praveenchdev/followup-agent/internal/infrastructure/external/smtp"
	httpmw "github.com/praveenchdev/followup-agent/internal/infrastructure/http/middleware"
	"github.com/praveenchdev/followup-agent/internal/infrastructure/storage"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
	"github.com/praveenchdev/followup-agent/internal/usecase/escalation"
	"github.com/praveenchdev/followup-agent/internal/usecase/mom"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/internal/usecase/reminder"
	"github.com/praveenchdev/followup-agent/internal/usecase/reply"
	"github.com/praveenchdev/followup-agent/pkg/config"
	"github.com/praveenchdev/followup-agent/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	log.Println("Initializing dependencies...")

	// Repositories: PostgreSQL by default, in-memory for local runs
	var (
		taskRepo       domainrepo.TaskRepository
		meetingRepo    domainrepo.MeetingRepository
		userRepo       domainrepo.UserRepository
		escalationRepo domainrepo.EscalationRepository
	)

	if cfg.Database.Driver == "memory" {
		log.Println("Using in-memory repositories (DB_DRIVER=memory)")
		taskRepo = repository.NewMemoryTaskRepository()
		meetingRepo = repository.NewMemoryMeetingRepository()
		userRepo = repository.NewMemoryUserRepository()
		escalationRepo = repository.NewMemoryEscalationRepository()
	} else {
		log.Println("Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if cfg.Server.Environment == "production" {
				log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
			}
			log.Println("Running sql-migrate migrations (development only)...")
			if err := database.Migrate(db); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}

		taskRepo = repository.NewTaskRepository(db)
		meetingRepo = repository.NewMeetingRepository(db)
		userRepo = repository.NewUserRepository(db)
		escalationRepo = repository.NewEscalationRepository(db)
	}

	// Directory cache: Redis when enabled, in-process store otherwise
	var dirCache directory.Cache
	if cfg.Redis.Enabled {
		log.Println("Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, falling back to in-process cache: %v", err)
			dirCache = cache.NewMemoryStore()
		} else {
			defer redisClient.Close()
			dirCache = redisClient
		}
	} else {
		dirCache = cache.NewMemoryStore()
	}

	// Outbound mail
	mailClient := smtp.NewClient(&cfg.SMTP, logger)

	// MOM archive storage
	var archiver domainrepo.Archiver
	if cfg.Followup.EnableArchive {
		log.Println("Connecting to archive storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Printf("Archive storage unavailable, submissions will not be archived: %v", err)
		} else {
			archiver = minioClient
		}
	}

	// Services
	dirService := directory.NewService(userRepo, dirCache, logger)
	registryService := registry.NewService(taskRepo, meetingRepo, &cfg.Followup, logger)
	momService := mom.NewService(mom.NewParser(&cfg.Followup), registryService, meetingRepo, dirService, archiver, &cfg.Followup, logger)
	schedulerService := reminder.NewScheduler(registryService, dirService, mailClient, &cfg.Followup, logger)
	replyService := reply.NewService(registryService, dirService, mailClient, &cfg.Followup, logger)
	escalationService := escalation.NewService(registryService, escalationRepo, mailClient, &cfg.Followup, logger)

	// JWT manager and auth middleware
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authMW := httpmw.NewAuthMiddleware(jwtManager, logger)

	// Handlers and routes
	log.Println("Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewMeetingHandler(momService, logger),
		handler.NewTaskHandler(registryService, logger),
		handler.NewReplyHandler(replyService, logger),
		handler.NewRunHandler(schedulerService, escalationService, logger),
		handler.NewUserHandler(dirService, logger),
		authMW,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		log.Printf("Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
