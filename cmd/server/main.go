package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/islandscholars/backend/api/handler"
	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/internal/config"
	"github.com/islandscholars/backend/internal/infrastructure/monitor"
	pgInfra "github.com/islandscholars/backend/internal/infrastructure/postgres"
	redisInfra "github.com/islandscholars/backend/internal/infrastructure/redis"
	"github.com/islandscholars/backend/internal/middleware"
	"github.com/islandscholars/backend/internal/router"
	"github.com/islandscholars/backend/internal/services"
	"github.com/islandscholars/backend/internal/services/lifecycle"
	"github.com/islandscholars/backend/pkg/httpcontext"
	"github.com/islandscholars/backend/pkg/logger"
	boltRepo "github.com/islandscholars/backend/repository/bolt"
	"github.com/islandscholars/backend/repository/postgres"
	redisRepo "github.com/islandscholars/backend/repository/redis"
	applicationUC "github.com/islandscholars/backend/usecase/application"
	authUC "github.com/islandscholars/backend/usecase/auth"
	eventUC "github.com/islandscholars/backend/usecase/event"
	internshipUC "github.com/islandscholars/backend/usecase/internship"
	notificationUC "github.com/islandscholars/backend/usecase/notification"
	profileUC "github.com/islandscholars/backend/usecase/profile"
	universityUC "github.com/islandscholars/backend/usecase/university"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	notificationStore, err := boltRepo.Open(cfg.Notifications.Path, "notifications")
	if err != nil {
		zapLogger.Fatal("failed to open notification store", zap.Error(err))
	}
	manager.Register("notification_store", func(ctx context.Context) error {
		return notificationStore.Close()
	})

	mon := monitor.New(pool, redisClient, notificationStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	internshipRepo := postgres.NewInternshipRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	universityRepo := postgres.NewUniversityRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	notificationUseCase := notificationUC.New(notificationStore, zapLogger)

	janitor := services.NewJanitor(notificationStore, zapLogger, services.JanitorConfig{
		Interval:  cfg.Notifications.PruneInterval,
		Retention: cfg.Notifications.Retention,
	})
	janitor.Start()
	manager.Register("notification_janitor", func(ctx context.Context) error {
		janitor.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		AdminHandle:      cfg.Auth.AdminHandle,
		AdminSecret:      cfg.Auth.AdminSecret,
		AdminSecretHash:  cfg.Auth.AdminSecretHash,
		JWTSecret:        cfg.Auth.JWTSecret,
		JWTIssuer:        cfg.Auth.JWTIssuer,
		SessionTTL:       cfg.Auth.SessionTTL,
		RegistrationOpen: cfg.Auth.RegistrationOpen,
	}, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	internshipUseCase := internshipUC.New(internshipRepo, notificationUseCase, zapLogger)
	applicationUseCase := applicationUC.New(applicationRepo, internshipRepo, notificationUseCase, zapLogger)
	eventUseCase := eventUC.New(eventRepo, zapLogger)
	universityUseCase := universityUC.New(universityRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:         apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile:      apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(notificationUseCase, ctxAdapter, zapLogger),
		Internship:   apiHandler.NewInternshipHandler(internshipUseCase, ctxAdapter, zapLogger),
		Application:  apiHandler.NewApplicationHandler(applicationUseCase, ctxAdapter, zapLogger),
		Event:        apiHandler.NewEventHandler(eventUseCase, ctxAdapter, zapLogger),
		University:   apiHandler.NewUniversityHandler(universityUseCase, ctxAdapter, zapLogger),
		Dashboard:    apiHandler.NewDashboardHandler(notificationUseCase, ctxAdapter, zapLogger),
		Health:       apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	mw := router.Middleware{
		Authenticate: middleware.Authenticate(cfg.Auth.JWTSecret, authUseCase, zapLogger),
		RequireRoles: middleware.RequireRoles,
		Guard: func(allowed ...domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
			return middleware.Guard(cfg.Auth.JWTSecret, authUseCase, zapLogger, allowed...)
		},
	}

	r := router.New(handlers, mw)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
