package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"graniteapi.app/api"
	"graniteapi.app/config"
	"graniteapi.app/database"
	"graniteapi.app/imaging"
	"graniteapi.app/providers"
	"graniteapi.app/providers/cache"
	"graniteapi.app/repository"
	"graniteapi.app/scheduler"
	"graniteapi.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	cache     cache.GenericCacheInterface
	server    *api.Server
	scheduler *scheduler.Scheduler
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

	genericCache, err := app.createCache()
	if err != nil {
		return fmt.Errorf("create cache backend: %w", err)
	}
	app.cache = genericCache

	providerManager, err := app.createProviderManager(genericCache)
	if err != nil {
		return fmt.Errorf("create provider manager: %w", err)
	}

	emailProvider := providers.NewSMTPEmailProvider(&app.config.Email)
	inquiryRepo := repository.NewInquiryRepository(app.db)

	catalogService := service.NewCatalogService(providerManager)
	imageService := service.NewImageService(
		imaging.NewTransformer(),
		genericCache,
		&app.config.Catalog,
		&app.config.Image,
		time.Duration(app.config.Cache.ImageTTLSeconds)*time.Second,
	)
	contactService := service.NewContactService(inquiryRepo, emailProvider, app.config)

	app.server = api.NewServer(
		app.db,
		app.config,
		catalogService,
		imageService,
		contactService,
		promhttp.Handler(),
	)
	app.scheduler = scheduler.NewScheduler(app.config, genericCache, inquiryRepo)

	slog.Info("Services initialized successfully")
	return nil
}

// createCache builds the configured cache backend, instrumented with
// Prometheus metrics unless disabled.
func (app *Application) createCache() (cache.GenericCacheInterface, error) {
	var backend cache.GenericCacheInterface

	switch app.config.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         app.config.Cache.RedisAddr,
			Password:     app.config.Cache.RedisPassword,
			DB:           app.config.Cache.RedisDB,
			DialTimeout:  time.Duration(app.config.Cache.DialTimeoutSecs) * time.Second,
			ReadTimeout:  time.Duration(app.config.Cache.ReadTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(app.config.Cache.WriteTimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		backend = redisCache
	default:
		backend = cache.NewMemoryCache()
	}

	if app.config.Cache.EnableInstrumenting {
		backend = providers.NewInstrumentedCache(backend, app.config.Cache.Type)
	}

	return backend, nil
}

// createProviderManager creates and configures the catalog provider manager
func (app *Application) createProviderManager(genericCache cache.GenericCacheInterface) (*providers.ProviderManager, error) {
	slog.Debug("Creating catalog provider manager...")

	providerConfig := &providers.ProviderConfiguration{
		SourceOrder:   app.config.Catalog.SourceOrder(),
		ImagesRoot:    app.config.Catalog.ImagesRoot,
		Cache:         genericCache,
		CacheTTL:      time.Duration(app.config.Catalog.CacheTTLMinutes) * time.Minute,
		EnableLogging: true,
	}
	if app.config.Catalog.UsesStrapi() {
		providerConfig.StrapiConfig = &app.config.Strapi
	}

	providerManager, err := providers.NewProviderManager(providerConfig)
	if err != nil {
		return nil, err
	}

	slog.Debug("Provider manager created", "config", providerManager.GetProviderInfo())
	return providerManager, nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

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

	if closer, ok := app.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("Error closing cache backend", "error", err)
		}
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
