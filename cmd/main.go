package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/atompull/internal/adapters/http/api"
	"github.com/okian/atompull/internal/adapters/radio"
	app "github.com/okian/atompull/internal/app"
	"github.com/okian/atompull/internal/config"
	"github.com/okian/atompull/internal/domain/model"
	"github.com/okian/atompull/pkg/logger"
	"github.com/okian/atompull/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithStoreCapacity(cfg.StoreCapacity),
		app.WithMinCooldown(time.Duration(cfg.MinCooldownMillis)*time.Millisecond),
		app.WithMinCallsPerBucket(cfg.MinCallsPerBucket),
		app.WithDurationBucketMillis(cfg.DurationBucketMillis),
		app.WithRadioInfo(radioInfoFromConfig(cfg)),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	limiter := rate.NewLimiter(rate.Limit(cfg.PullRatePerSec), cfg.PullBurst)
	apiServer := api.NewServer(svc, svc, api.WithPullLimiter(limiter))
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// radioInfoFromConfig seeds the static radio provider. An access family
// of zero leaves the provider not ready, so live-snapshot pulls skip.
func radioInfoFromConfig(cfg *config.Config) *radio.StaticInfo {
	if cfg.Radio.AccessFamily == 0 {
		return radio.NewStaticInfo()
	}
	opts := []radio.Option{
		radio.WithSimSlotState(model.SimSlotState{
			ActiveSlotCount: cfg.Radio.SimSlots,
			ActiveSimCount:  cfg.Radio.ActiveSims,
			ActiveEsimCount: cfg.Radio.ActiveEsims,
		}),
		radio.WithRadioAccessFamily(cfg.Radio.AccessFamily),
	}
	if cfg.Radio.CarrierIDTableVersion > 0 {
		opts = append(opts, radio.WithCarrierIDTableVersion(cfg.Radio.CarrierIDTableVersion))
	}
	return radio.NewStaticInfo(opts...)
}

// startSystemMetricsUpdater refreshes process-level gauges periodically.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}
