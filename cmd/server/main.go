package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"folio.backend/internal/config"
	"folio.backend/internal/infrastructure/jobs"
	"folio.backend/internal/infrastructure/mail"
	"folio.backend/internal/infrastructure/repositories"
	"folio.backend/internal/interfaces/http/handlers"
	"folio.backend/internal/interfaces/http/middleware"
	"folio.backend/internal/usecases"
	"folio.backend/pkg/logger"
	"folio.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	newSessionCache = redis.NewSessionCache
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownServer  = func(ctx context.Context, srv *http.Server) error { return srv.Shutdown(ctx) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "connected to PostgreSQL")
	}

	// The session cache is optional: without Redis the relational
	// store serves every validation.
	var sessionCache usecases.SessionCache
	if cfg.Redis.URL != "" {
		if cfg.Security.SessionCacheKey == "" {
			return errors.New("SESSION_CACHE_KEY must be set when REDIS_URL is configured")
		}
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		cache, err := newSessionCache(cfg.Security.SessionCacheKey)
		if err != nil {
			return fmt.Errorf("failed to initialize session cache: %w", err)
		}
		sessionCache = cache
		logger.Info(context.Background(), "Redis session cache enabled")
	}

	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	verifRepo := repositories.NewEmailVerificationRepository(db)

	mailer := mail.New(cfg.Email)

	sessionUsecase := usecases.NewSessionUsecase(sessionRepo, sessionCache, cfg.Auth.SessionTTL)
	authUsecase := usecases.NewAuthUsecase(userRepo, verifRepo, sessionUsecase, mailer, cfg.Server.PublicBaseURL, cfg.Auth.VerificationTTL)

	cookies := handlers.NewSessionCookies(cfg.Auth.CookieName, cfg.Auth.SessionTTL, cfg.Auth.CookieSecure)
	authHandler := handlers.NewAuthHandler(authUsecase, sessionUsecase, cookies)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := jobs.NewSessionSweeper(sessionRepo, time.Hour)
	go sweeper.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, sqlDB)
	registerRoutes(r, routeDeps{
		authHandler:    authHandler,
		sessionUsecase: sessionUsecase,
		cookieName:     cfg.Auth.CookieName,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "shutting down server")
		sweeper.Stop()
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := shutdownServer(shutdownCtx, srv); err != nil {
			logger.Error(context.Background(), "server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(context.Background(), "server starting", zap.String("port", cfg.Server.Port))

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
