package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/auction-sheets-service/internal/app/auction"
	"github.com/preston-bernstein/auction-sheets-service/internal/config"
	httpserver "github.com/preston-bernstein/auction-sheets-service/internal/http"
	"github.com/preston-bernstein/auction-sheets-service/internal/http/handlers"
	"github.com/preston-bernstein/auction-sheets-service/internal/http/middleware"
	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/poller"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	service       *auction.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured sheet source and poller wiring.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithSource(cfg, logger, nil, nil)
}

// newServerWithSource wires the server around source. A nil source is built
// from cfg; a nil recorder is built by metrics setup.
func newServerWithSource(cfg config.Config, logger *slog.Logger, source providers.SheetSource, recorder *metrics.Recorder) (*Server, error) {
	tabs, err := buildTabs(cfg.Sheets)
	if err != nil {
		return nil, err
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if source == nil {
		source = newSourceFactory(logger, recorder).build(cfg)
	} else {
		source = providers.NewInstrumentedSource(source, logger, recorder, normalizeProviderName(cfg.Provider, source))
	}

	memoryStore := store.NewMemoryStore()
	snaps := buildSnapshots(cfg, memoryStore, logger)
	svc := auction.NewService(auction.Config{
		Source:     source,
		Tabs:       tabs,
		HomeNation: cfg.Sheets.HomeNation,
		CacheTTL:   cfg.CacheTTL,
		Store:      memoryStore,
		Logger:     logger,
		Metrics:    recorder,
	})

	var writer poller.SnapshotWriter
	if snaps.writer != nil {
		writer = snaps.writer
	}
	plr := poller.New(svc, writer, logger, recorder, cfg.PollInterval)
	httpSrv := buildHTTPServer(cfg, svc, memoryStore, snaps, writer, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		service:       svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, svc *auction.Service, memoryStore *store.MemoryStore, snaps snapshotComponents, writer poller.SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	routerCfg := httpserver.RouterConfig{
		Handler:     handlers.NewHandler(svc, memoryStore, logger, statusFn),
		Logger:      logger,
		Metrics:     recorder,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}
	if cfg.HTTP.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewIPRateLimiter(float64(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst)
	}
	if cfg.HTTP.AdminToken != "" {
		routerCfg.Admin = handlers.NewAdminHandler(svc, writer, cfg.HTTP.AdminToken, logger)
	}
	if snaps.store != nil {
		routerCfg.Snapshots = handlers.NewSnapshotHandler(snaps.store, logger)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(routerCfg),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
