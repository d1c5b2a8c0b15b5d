package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/sellerlink/api/openapi"
	"github.com/donaldgifford/sellerlink/internal/api/handlers"
	"github.com/donaldgifford/sellerlink/internal/api/middleware"
	"github.com/donaldgifford/sellerlink/internal/config"
	"github.com/donaldgifford/sellerlink/internal/credential"
	"github.com/donaldgifford/sellerlink/internal/engine"
	"github.com/donaldgifford/sellerlink/internal/spapi"
	"github.com/donaldgifford/sellerlink/internal/store"
	"github.com/donaldgifford/sellerlink/internal/telemetry"
	"github.com/donaldgifford/sellerlink/pkg/logger"
)

var (
	inMemory    bool
	autoMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&inMemory, "in-memory", false,
		"keep credentials in process memory instead of PostgreSQL (development only)")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:       cfg.Telemetry.Enabled,
		Endpoint:      cfg.Telemetry.Endpoint,
		Insecure:      cfg.Telemetry.Insecure,
		SamplingRatio: cfg.Telemetry.SamplingRatio,
		ServiceName:   cfg.Telemetry.ServiceName,
		Version:       Version,
	}, log)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("flushing telemetry", "error", err)
		}
	}()

	s, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	locker, lockPinger, closeLocker, err := newLocker(ctx, cfg, s, log)
	if err != nil {
		return err
	}
	defer closeLocker()

	svc, rl, err := buildEngine(cfg, s, locker, log)
	if err != nil {
		return err
	}

	e := newServer(cfg, svc, rl, handlers.NewHealthHandler(s, lockPinger), log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "region", cfg.SPAPI.Region, "sandbox", cfg.SPAPI.Sandbox)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, func(), error) {
	if inMemory {
		log.Warn("using in-memory credential store; credentials are lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	var opts []store.PostgresOption
	if cfg.Security.TokenEncryptionKey != "" {
		cipher, err := store.NewTokenCipher(cfg.Security.TokenEncryptionKey)
		if err != nil {
			return nil, nil, fmt.Errorf("creating token cipher: %w", err)
		}
		opts = append(opts, store.WithTokenCipher(cipher))
	} else {
		log.Warn("security.token_encryption_key is not set; tokens are stored in plain text")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pg, err := store.NewPostgresStore(connectCtx, cfg.Database.DSN(), cfg.Database.PoolSize, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if autoMigrate {
		if err := pg.Migrate(connectCtx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations complete")
	}

	return pg, pg.Close, nil
}

// newLocker picks the refresh lock backend. Without redis the lock lives in
// the credential store.
func newLocker(
	ctx context.Context,
	cfg *config.Config,
	s store.Store,
	log *slog.Logger,
) (credential.Locker, map[string]handlers.Pinger, func(), error) {
	if !cfg.Redis.Enabled {
		return credential.NewStoreLocker(s, cfg.Redis.LockTTL, log), nil, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	pingers := map[string]handlers.Pinger{
		"redis": handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}),
	}
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Warn("closing redis client", "error", err)
		}
	}
	return credential.NewRedisLocker(rdb, cfg.Redis.LockTTL, log), pingers, closeFn, nil
}

func buildEngine(
	cfg *config.Config,
	s store.Store,
	locker credential.Locker,
	log *slog.Logger,
) (*engine.Engine, *spapi.RateLimiter, error) {
	lwa, err := spapi.NewLWAClient(
		cfg.SPAPI.ClientID, cfg.SPAPI.ClientSecret, cfg.SPAPI.RedirectURI,
		spapi.WithTokenURL(cfg.SPAPI.TokenURL),
		spapi.WithHTTPClient(&http.Client{Timeout: cfg.SPAPI.AuthTimeout}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating token client: %w", err)
	}

	resolver := spapi.NewResolver(cfg.SPAPI.MarketplaceOverrides)
	marketplaceID, err := resolver.ResolveMarketplaceID(cfg.SPAPI.Region)
	if err != nil {
		return nil, nil, err
	}
	baseURL := cfg.SPAPI.Endpoint
	if baseURL == "" {
		if baseURL, err = resolver.ResolveBaseURL(cfg.SPAPI.Region, cfg.SPAPI.Sandbox); err != nil {
			return nil, nil, err
		}
	}

	rl := spapi.NewRateLimiter(
		cfg.SPAPI.RateLimit.PerSecond,
		cfg.SPAPI.RateLimit.Burst,
		cfg.SPAPI.RateLimit.DailyLimit,
	)
	client := spapi.NewClient(baseURL, marketplaceID,
		spapi.WithClientHTTPClient(&http.Client{Timeout: cfg.SPAPI.Timeout}),
		spapi.WithRateLimiter(rl),
		spapi.WithUserAgent(fmt.Sprintf("sellerlink/%s (Language=Go)", Version)),
	)

	pipeline := spapi.NewPipeline(client,
		spapi.WithMockFallback(*cfg.Orders.MockFallback),
		spapi.WithRestrictedData(*cfg.Orders.RestrictedData),
		spapi.WithPipelineLogger(log),
		spapi.WithCurrency(spapi.CurrencyFor(marketplaceID)),
		spapi.WithDefaults(spapi.FetchOptions{
			WindowDays: cfg.Orders.WindowDays,
			PageSize:   cfg.Orders.PageSize,
			TotalCap:   cfg.Orders.TotalCap,
		}),
		spapi.WithPaginatorOptions(spapi.WithPageDelay(cfg.Orders.PageDelay)),
	)

	manager := credential.NewManager(s, lwa,
		credential.WithLocker(locker),
		credential.WithLogger(log),
	)

	state, err := credential.NewStateCodec(cfg.Security.StateSecret, cfg.Security.StateTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("creating state codec: %w", err)
	}

	eng := engine.NewEngine(manager, pipeline, state,
		engine.WithLogger(log),
		engine.WithAuthorization(cfg.SPAPI.AuthURL, cfg.SPAPI.ApplicationID, *cfg.SPAPI.DraftApp),
		engine.WithMarketplace(cfg.SPAPI.Region, client.MarketplaceID()),
	)
	return eng, rl, nil
}

func newServer(
	cfg *config.Config,
	eng *engine.Engine,
	rl *spapi.RateLimiter,
	health *handlers.HealthHandler,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Recovery(log))

	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaCfg := huma.DefaultConfig("sellerlink API", Version)
	humaCfg.DocsPath = ""
	api := humaecho.New(e, humaCfg)
	openapi.RegisterRoutes(e)

	handlers.RegisterAccountRoutes(api, handlers.NewAccountHandler(eng, log))
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(eng, log))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(rl))

	return e
}
