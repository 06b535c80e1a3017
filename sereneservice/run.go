package sereneservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/imanelbaz22-debug/serene-app/internal/api"
	"github.com/imanelbaz22-debug/serene-app/internal/auth"
	"github.com/imanelbaz22-debug/serene-app/internal/config"
	"github.com/imanelbaz22-debug/serene-app/internal/factory"
	"github.com/imanelbaz22-debug/serene-app/internal/genai"
	"github.com/imanelbaz22-debug/serene-app/internal/health"
	"github.com/imanelbaz22-debug/serene-app/internal/logger"
	"github.com/imanelbaz22-debug/serene-app/internal/services"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

// Run starts the serene HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("serene-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("gemini_model", cfg.GeminiModel).
		Bool("ai_configured", cfg.GeminiAPIKey != "").
		Msg("Serene service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, closeStore, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	clock := clockwork.NewRealClock()
	ai := newAIClient(cfg, clock, log)

	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	router := api.NewRouter(buildDeps(cfg, log, st, ai, clock, svcHealth))

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

func newAIClient(cfg *config.Config, clock clockwork.Clock, log zerolog.Logger) *genai.Client {
	c := genai.New(genai.Options{
		BaseURL:     cfg.GeminiBaseURL,
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.GeminiTemperature,
		Timeout:     cfg.AITimeout(),
		MaxRetries:  cfg.AIMaxRetries,
		DailyQuota:  cfg.AIDailyQuotaPerUser,
		Clock:       clock,
	}, log.With().Str("component", "genai").Logger())
	if !c.Configured() {
		log.Warn().Msg("GEMINI_API_KEY not set; chat, journal and reports will use canned replies")
	}
	return c
}

// buildDeps constructs services and handlers around the shared store.
func buildDeps(cfg *config.Config, log zerolog.Logger, st store.Store, ai *genai.Client, clock clockwork.Clock, svcHealth *health.ServiceHealthChecker) api.Deps {
	return api.Deps{
		Auth:      auth.NewAuthenticator(st.Users(), cfg.AllowMockToken, cfg.JWTSecret, log),
		CheckIns:  services.NewCheckInService(st, clock),
		Analytics: services.NewAnalyticsService(st, clock),
		Reports:   services.NewReportService(st, ai, clock, log),
		Journal:   services.NewJournalService(st, ai, clock, log),
		Chat:      services.NewChatService(st, ai, clock, log),
		Health:    api.NewHealthHandler(svcHealth, ai.Configured()),
		Metrics:   cfg.MetricsEnabled,
	}
}

// startHealthCheckers starts component checkers and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// chat and report calls wait on the model
		WriteTimeout: cfg.AITimeout()*time.Duration(cfg.AIMaxRetries+1) + 15*time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// startupHealthTimeout is interval*2 with a floor of 60 seconds.
func startupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := startupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
