package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"newsproxy/internal/config"
	"newsproxy/internal/domain/entity"
	"newsproxy/internal/infra/cache"
	"newsproxy/internal/infra/gnews"
	"newsproxy/internal/observability/logging"
	"newsproxy/internal/observability/slo"
	"newsproxy/internal/observability/tracing"
	"newsproxy/internal/resilience/circuitbreaker"
	newsUC "newsproxy/internal/usecase/news"
	pkgconfig "newsproxy/pkg/config"

	hhttp "newsproxy/internal/handler/http"
	"newsproxy/internal/handler/http/middleware"
	hnews "newsproxy/internal/handler/http/news"
	"newsproxy/internal/handler/http/requestid"

	_ "newsproxy/docs" // swagger docs
)

// @title           News API
// @version         1.0
// @description     Caching proxy in front of the GNews API: top headlines, search and filtered queries with a TTL response cache.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

const serviceName = "newsproxy"

func main() {
	configPath := flag.String("config", pkgconfig.GetEnvString("CONFIG_PATH", ""), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// the logger is not configured yet
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)

	shutdownTracing := tracing.InitProvider(serviceName, cfg.Version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	components, err := setupServer(cfg, logger)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg, components)
}

// initLogger builds the process logger and installs it as the slog default.
func initLogger(cfg config.LogConfig) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.Level, cfg.Format)
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler http.Handler
	Janitor *cache.Janitor
	Client  *gnews.Client
}

// setupServer wires the cache, upstream client, use cases and HTTP shell.
func setupServer(cfg *config.Config, logger *slog.Logger) (*ServerComponents, error) {
	store := cache.New[*entity.UpstreamResponse](cache.Config{
		Name: "gnews",
		TTL:  cfg.Cache.TTL,
	})

	janitor, err := cache.NewJanitor(cfg.Cache.SweepSchedule, store, logger)
	if err != nil {
		return nil, fmt.Errorf("cache janitor: %w", err)
	}

	clientCfg := gnews.DefaultConfig()
	clientCfg.BaseURL = cfg.GNews.BaseURL
	clientCfg.APIKey = cfg.GNews.APIKey
	clientCfg.Timeout = cfg.GNews.Timeout
	clientCfg.MaxBodySize = cfg.GNews.MaxBodyBytes
	clientCfg.UserAgent = serviceName + "/" + cfg.Version
	if err := clientCfg.Validate(); err != nil {
		return nil, fmt.Errorf("gnews client: %w", err)
	}

	breaker := circuitbreaker.New(gnews.BreakerConfig(logger))
	client := gnews.NewClient(clientCfg, store, breaker, logger)
	svc := &newsUC.Service{Upstream: client, Logger: logger}

	tracker := slo.NewTracker(slo.DefaultWindow)
	mux := setupRoutes(cfg.Version, svc, client, tracker)
	handler := applyMiddleware(cfg, logger, tracker, mux)

	logger.Info("server components initialized",
		slog.Duration("cache_ttl", store.TTL()),
		slog.String("sweep_schedule", cfg.Cache.SweepSchedule),
		slog.String("gnews_base_url", clientCfg.BaseURL),
		slog.Duration("upstream_timeout", clientCfg.Timeout))

	return &ServerComponents{
		Handler: handler,
		Janitor: janitor,
		Client:  client,
	}, nil
}

// setupRoutes registers every route. "/" doubles as the not-found fallback, so
// unknown paths and wrong methods on known paths get the 404 envelope.
func setupRoutes(version string, svc *newsUC.Service, client *gnews.Client, tracker *slo.Tracker) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version:   version,
		StartedAt: time.Now(),
		Upstream:  client,
		Cache:     client,
		SLO:       tracker,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Upstream: client})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", slo.MetricsHandler(tracker, hhttp.MetricsHandler()))
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hnews.Register(mux, svc)

	mux.Handle("/", hhttp.IndexHandler{Version: version})
	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID → Tracing → Metrics → SLO → Logging
// → Recovery → CORS → Input validation → Body limit → Timeout.
func applyMiddleware(cfg *config.Config, logger *slog.Logger, tracker *slo.Tracker, handler http.Handler) http.Handler {
	corsConfig := middleware.DefaultCORSConfig(cfg.Server.CORSAllowedOrigins)
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", cfg.Server.CORSAllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods))

	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.MetricsMiddleware,
		slo.Middleware(tracker),
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		middleware.CORS(corsConfig),
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(1<<20),
		hhttp.Timeout(cfg.Server.RequestTimeout),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components.Janitor.Start()

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()

	if err := components.Janitor.Stop(shutdownCtx); err != nil {
		logger.Error("cache janitor stop failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
