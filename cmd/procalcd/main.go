package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zephyrtronium/procalc"
	"github.com/zephyrtronium/procalc/internal/config"
	"github.com/zephyrtronium/procalc/internal/history"
	"github.com/zephyrtronium/procalc/internal/httpapi"
	"github.com/zephyrtronium/procalc/internal/logging"
	"github.com/zephyrtronium/procalc/internal/memory"
	"github.com/zephyrtronium/procalc/internal/service"
	"github.com/zephyrtronium/procalc/internal/telemetry"
)

// version is reported in telemetry resources. It is set at link time.
var version = "dev"

func main() {
	log.SetFlags(0)
	var (
		addr string
		prec int
	)
	flag.StringVar(&addr, "addr", "", "listen address (default $PROCALC_ADDR or :8080)")
	flag.IntVar(&prec, "p", 0, "significant digits of calculations (default $PROCALC_PRECISION or 28)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if prec != 0 {
		cfg.Precision = prec
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Installed before the logger so that its OpenTelemetry core exports.
	tel, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    "procalc",
		ServiceVersion: version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Fatal(err)
	}

	logger, _, err := logging.New(logging.Config{
		Environment: logging.Environment(cfg.Environment),
		Level:       cfg.LogLevel,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, closeStore, err := openHistory(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening history", zap.Error(err))
	}
	defer closeStore()

	calc, err := service.New(
		procalc.NewContext(procalc.Prec(cfg.Precision)),
		store,
		memory.New(),
		service.WithLogger(logger),
		service.WithTracerProvider(tel.TracerProvider),
		service.WithMeterProvider(tel.MeterProvider),
	)
	if err != nil {
		logger.Fatal("creating calculator", zap.Error(err))
	}
	app := httpapi.New(calc, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening",
		zap.String("addr", cfg.Addr),
		zap.Int("precision", cfg.Precision),
		zap.Int("history_capacity", cfg.HistoryCapacity),
	)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := tel.Shutdown(sctx); err != nil {
		logger.Error("telemetry shutdown", zap.Error(err))
	}
}

// openHistory returns the Redis history store if an address is configured and
// an in-process ring otherwise.
func openHistory(ctx context.Context, cfg config.Config, logger *zap.Logger) (history.Store, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-process history")
		return history.NewRing(cfg.HistoryCapacity), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Info("using redis history", zap.String("addr", cfg.RedisAddr), zap.String("key", cfg.RedisKey))
	closer := func() {
		if err := client.Close(); err != nil {
			logger.Warn("closing redis", zap.Error(err))
		}
	}
	return history.NewRedisStore(client, cfg.RedisKey, cfg.HistoryCapacity), closer, nil
}
