package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/termtab/internal/command"
	"github.com/MrSnakeDoc/termtab/internal/config"
	"github.com/MrSnakeDoc/termtab/internal/httpserver"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/redis"
	"github.com/MrSnakeDoc/termtab/internal/scheduler"
	"github.com/MrSnakeDoc/termtab/internal/sites"
	"github.com/MrSnakeDoc/termtab/internal/store"
	"github.com/MrSnakeDoc/termtab/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/termtab/internal/store/redis"
	"github.com/MrSnakeDoc/termtab/internal/theme"
	"github.com/MrSnakeDoc/termtab/internal/version"
	"github.com/MrSnakeDoc/termtab/internal/weather"
	"github.com/MrSnakeDoc/termtab/internal/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	seeder      *scheduler.Seeder
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	s, redisClient, err := openStore(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	mode := sites.ModeRecent
	if cfg.BookmarkMode() {
		mode = sites.ModeBookmarks
	}

	themes := theme.NewLoader(s, loggerClient)

	opts := command.Options{
		Mode:   mode,
		Theme:  themes,
		Logger: loggerClient,
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RateLimit:    cfg.RateLimit,
		Mode:         mode,
		Store:        s,
		Theme:        themes,
		SeedFile:     cfg.SeedFile,
	}

	if mode == sites.ModeBookmarks {
		bookmarks := sites.NewBookmarks(s, loggerClient)
		d.Sites, d.Bookmarks = bookmarks, bookmarks
		opts.Sites = bookmarks
	} else {
		recent := sites.NewRecent(s, loggerClient)
		d.Sites = recent
		opts.Sites, opts.Recorder = recent, recent
	}
	d.Dispatcher = command.NewDispatcher(opts)

	if cfg.WeatherEnabled {
		d.Weather = weather.NewClient(weather.Endpoints{
			Geo:      cfg.GeoURL,
			GeoByIP:  cfg.GeoByIPURL,
			Forecast: cfg.ForecastURL,
		}, nil, loggerClient.With(logger.String("component", "weather")))
	} else {
		loggerClient.Info("weather widget disabled")
	}

	d.Pages, err = web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	var seeder *scheduler.Seeder
	if cfg.SeedFile != "" {
		d.SeedTrigger = make(chan struct{}, 1)
		seeder = scheduler.NewSeeder(cfg.SeedFile, s, loggerClient, d.SeedTrigger)
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		seeder:      seeder,
	}, nil
}

// openStore connects the configured backend. Redis fails fast when it never
// answers within REDIS_CONNECT_TIMEOUT.
func openStore(cfg *config.Config, log logger.Logger) (store.Store, *goredis.Client, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using the in-memory store, nothing survives a restart")
		return memory.New(), nil, nil
	}

	client, err := redis.New(redis.OptionsFromConfig(cfg), log.With(logger.String("component", "redis")))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return redisstore.NewStore(client), client, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenPort)
	a.logger.Info("dashboard configured",
		logger.String("site_mode", a.cfg.SiteMode),
		logger.String("store", a.cfg.Store),
		logger.Bool("weather", a.cfg.WeatherEnabled))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.seeder != nil {
		if err := a.seeder.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seeder: %w", err)
		}
		a.logger.Info("seeder started", logger.String("file", a.cfg.SeedFile))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.seeder != nil {
		a.seeder.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ termtab stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
