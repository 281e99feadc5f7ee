package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/aboutme/internal/config"
	"github.com/MrSnakeDoc/aboutme/internal/generator"
	"github.com/MrSnakeDoc/aboutme/internal/httpserver"
	"github.com/MrSnakeDoc/aboutme/internal/httpserver/deps"
	"github.com/MrSnakeDoc/aboutme/internal/index"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
	"github.com/MrSnakeDoc/aboutme/internal/redis"
	"github.com/MrSnakeDoc/aboutme/internal/render"
	"github.com/MrSnakeDoc/aboutme/internal/scheduler"
	"github.com/MrSnakeDoc/aboutme/internal/sources/hashnode"
	"github.com/MrSnakeDoc/aboutme/internal/sources/profile"
	"github.com/MrSnakeDoc/aboutme/internal/store"
	redisstore "github.com/MrSnakeDoc/aboutme/internal/store/redis"
	sqlitestore "github.com/MrSnakeDoc/aboutme/internal/store/sqlite"
	"github.com/MrSnakeDoc/aboutme/internal/utils"
	"github.com/MrSnakeDoc/aboutme/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       store.SnapshotStore
	memIndex    *index.MemoryIndex
	regenerator *scheduler.PageRegenerator
}

// NewGenerator wires the publication source, the static profile and the
// renderer into a page generator.
func NewGenerator(cfg *config.Config, loggerClient logger.Logger) (*generator.Generator, error) {
	prof, err := profile.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	client := hashnode.NewClient(hashnode.Options{
		Endpoint:  cfg.GQLEndpoint,
		Timeout:   cfg.FetchTimeout,
		UserAgent: "aboutme/" + version.Version,
	}, loggerClient)

	return generator.New(client, renderer, prof, cfg.PublicationHost, loggerClient), nil
}

// openStore returns the configured snapshot store, or nil when persistence
// is disabled.
func openStore(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (store.SnapshotStore, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Client: goredis.Options{
				Addr:         cfg.RedisAddr,
				Username:     cfg.RedisUser,
				Password:     cfg.RedisPassword,
				DB:           cfg.RedisDB,
				DialTimeout:  cfg.RedisDT,
				ReadTimeout:  cfg.RedisRT,
				WriteTimeout: cfg.RedisWT,
				PoolSize:     cfg.RedisPoolSize,
			},
			Backoff: redis.Backoff{
				Initial: cfg.RedisRetryInterval,
				Max:     cfg.RedisMaxWait,
				Total:   cfg.RedisConnectTimeout,
				Ping:    cfg.RedisPingTimeout,
			},
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.NewStore(client, cfg.PublicationHost), nil
	case config.StoreSQLite:
		loggerClient.Info("opening sqlite snapshot store", logger.String("path", cfg.SQLitePath))
		st, err := sqlitestore.Open(cfg.SQLitePath, cfg.PublicationHost)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return st, nil
	default:
		loggerClient.Info("snapshot persistence disabled")
		return nil, nil
	}
}

// New wires the service. The store is connected here; generation starts in Run.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	gen, err := NewGenerator(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	memIndex := index.NewMemoryIndex()

	// Serve the previous snapshot while the first generation runs
	if st != nil {
		syncer := scheduler.NewSnapshotSyncer(st, memIndex, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to restore snapshot on startup, will generate",
				logger.Error(err))
		}
	}

	reloadTrigger := make(chan struct{}, 1)

	regenerator := scheduler.NewPageRegenerator(
		gen,
		st,
		memIndex,
		loggerClient,
		cfg.RefreshInterval,
		cfg.RevalidateInterval,
		reloadTrigger,
	)

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		MemoryIndex:        memIndex,
		Store:              st,
		Revalidator:        regenerator,
		RevalidateInterval: cfg.RevalidateInterval,
		ReloadTrigger:      reloadTrigger,
		AssetsDir:          cfg.AssetsDir,
		RateBurst:          cfg.RateBurst,
		RatePerIPMin:       cfg.RatePerIPMin,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		store:       st,
		memIndex:    memIndex,
		regenerator: regenerator,
	}, nil
}

// Run generates the page, serves it and blocks until ctx is cancelled or
// the server fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting aboutme %s on %s", version.String(), a.cfg.ListenPort)

	defer a.closeStore()

	if err := a.regenerator.Start(ctx); err != nil {
		return fmt.Errorf("failed to start page regenerator: %w", err)
	}
	a.logger.Info("page regenerator started",
		logger.Duration("refresh_interval", a.cfg.RefreshInterval),
		logger.Duration("revalidate_interval", a.cfg.RevalidateInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	a.regenerator.Stop()

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ aboutme stopped cleanly")
	return nil
}

func (a *App) closeStore() {
	if a.store == nil {
		return
	}
	utils.MustClose(a.store, a.store.Backend()+" store", a.logger)
}
