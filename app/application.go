package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"weatherbot.app/api"
	"weatherbot.app/config"
	"weatherbot.app/database"
	"weatherbot.app/metrics"
	"weatherbot.app/providers"
	"weatherbot.app/providers/cache"
	"weatherbot.app/repository"
	"weatherbot.app/scheduler"
	"weatherbot.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config     *config.Config
	db         *gorm.DB
	server     *api.Server
	scheduler  *scheduler.Scheduler
	subscriber *service.SubscriberService
	cacheStop  func()
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	forecastProvider, err := app.createForecastProvider()
	if err != nil {
		return fmt.Errorf("create forecast provider: %w", err)
	}

	geocoder := providers.NewOpenMeteoGeocoder(&app.config.Geocoding)
	emailProvider := providers.NewSMTPEmailProvider(&app.config.Email)

	userRepo := repository.NewUserRepository(app.db)

	deliveryService := service.NewDeliveryService(emailProvider)
	forecastService := service.NewForecastService(geocoder, forecastProvider)
	notificationService := service.NewNotificationService(userRepo, forecastProvider, deliveryService)

	app.scheduler = scheduler.NewScheduler(notificationService.Notify, metrics.NewNotificationMetrics())
	app.subscriber = service.NewSubscriberService(userRepo, geocoder, app.scheduler)

	app.server = api.NewServer(app.config, forecastService, app.subscriber)

	slog.Info("Services initialized successfully")
	return nil
}

// createForecastProvider builds the upstream client wrapped in the
// coordinate-bucketed cache decorator.
func (app *Application) createForecastProvider() (providers.ForecastProvider, error) {
	upstream := providers.NewOpenMeteoProvider(&app.config.Forecast)

	var backend cache.GenericCacheInterface
	switch app.config.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:     app.config.Cache.RedisAddr,
			Password: app.config.Cache.RedisPassword,
			DB:       app.config.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		backend = redisCache
		app.cacheStop = func() {
			if err := redisCache.Close(); err != nil {
				slog.Warn("Error closing redis cache", "error", err)
			}
		}
	default:
		memoryCache := cache.NewMemoryCache()
		backend = memoryCache
		app.cacheStop = memoryCache.Stop
	}

	cacheMetrics := metrics.NewCacheMetrics(app.config.Cache.Type)
	proxy := providers.NewForecastCacheProxy(upstream, cache.NewForecastCache(backend), app.config.Cache.TTL(), cacheMetrics)

	slog.Debug("Forecast provider created", "cache_type", app.config.Cache.Type, "ttl", app.config.Cache.TTL())
	return proxy, nil
}

// Start arms the stored notification jobs and starts the scheduler and the
// HTTP server. Blocks until the server stops.
func (app *Application) Start() error {
	slog.Info("Starting application...")

	armed, err := app.subscriber.ArmAll()
	if err != nil {
		return fmt.Errorf("arm stored notification jobs: %w", err)
	}
	slog.Info("Notification jobs armed", "count", armed)

	slog.Info("Starting scheduler...")
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.cacheStop != nil {
		app.cacheStop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
