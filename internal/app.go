package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/validation"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/controller"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/crmapi"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/event"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/middleware"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/repository"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/route"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type BootstrapConfig struct {
	db         *gorm.DB
	web        *fiber.App
	log        *logrus.Logger
	config     *env.Config
	validation *validation.Validation
	redis      *redis.Client
	bus        *event.Bus
	hub        *event.Hub
}

func NewApp(log *logrus.Logger, config *env.Config, db *gorm.DB, web *fiber.App, validation *validation.Validation, redis *redis.Client) *BootstrapConfig {
	return &BootstrapConfig{db: db, web: web, log: log, config: config, validation: validation, redis: redis}
}

func (app *BootstrapConfig) Bootstrap() {
	// setup events
	app.bus = event.NewBus()
	app.hub = event.NewHub(app.log, app.bus, app.config.Web.Cors.AllowOrigins)

	// setup repositories
	blacklistRepository := repository.NewRedisTokenBlacklist(app.redis)
	auditRepository := repository.NewPermissionAuditRepository(app.db)
	uow := repository.NewUnitOfWork(app.db)

	// setup backend client
	backend := crmapi.NewClient(app.log, app.config)

	// setup use service
	jwtService := service.NewJwtService(app.log, app.config)
	blacklistService := service.NewBlacklistService(app.log, app.config, jwtService, blacklistRepository)
	authService := service.NewAuthService(blacklistService, app.log)
	redisService := service.NewRedisService(app.redis, app.log)
	permissionService := service.NewPermissionService(backend, redisService, auditRepository, uow, app.bus, app.config, app.log)

	// setup controller
	welcomeController := controller.NewWelcomeController(app.config)
	authController := controller.NewAuthController(authService, app.log)
	permissionController := controller.NewPermissionController(permissionService, app.validation, app.log)

	// setup middleware
	authMiddleware := middleware.AuthMiddleware(jwtService, blacklistService, app.log)

	// setup route
	routeConfig := route.NewRouteConfig(app.web)
	routeConfig.WelcomeRoutes(welcomeController)
	routeConfig.RegisterAuthRoutes(authController, authMiddleware)
	routeConfig.RegisterPermissionRoutes(permissionController, authMiddleware)
}

// eventsHandler serves the refresh hub. It runs on its own listener because
// fasthttp connections cannot be handed to gorilla/websocket.
func (app *BootstrapConfig) eventsHandler() http.Handler {
	path := app.config.Events.Path
	if path == "" {
		path = "/ws/refresh"
	}

	mux := http.NewServeMux()
	mux.Handle(path, app.hub)
	return mux
}

func (app *BootstrapConfig) Run() {
	app.Bootstrap()

	events := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Events.Port),
		Handler:           app.eventsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		app.log.WithField("addr", events.Addr).Info("Starting refresh event server")
		if err := events.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start event server: %v", err)
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		app.log.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		app.hub.Close()
		if err := events.Shutdown(ctx); err != nil {
			app.log.WithError(err).Warn("Event server shutdown failed")
		}
		if err := app.web.ShutdownWithContext(ctx); err != nil {
			app.log.WithError(err).Warn("Web server shutdown failed")
		}
	}()

	err := app.web.Listen(fmt.Sprintf(":%d", app.config.Web.Port))
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
