package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/credentials"

	"github.com/andre1397/calculadora-TOTVS/internal/application/usecase"
	"github.com/andre1397/calculadora-TOTVS/internal/domain/port"
	"github.com/andre1397/calculadora-TOTVS/internal/infrastructure/config"
	"github.com/andre1397/calculadora-TOTVS/internal/infrastructure/kafka"
	"github.com/andre1397/calculadora-TOTVS/internal/infrastructure/messaging"
	grpcPresentation "github.com/andre1397/calculadora-TOTVS/internal/presentation/grpc"
	"github.com/andre1397/calculadora-TOTVS/internal/presentation/rest"
	"github.com/andre1397/calculadora-TOTVS/pkg/auth"
	pkgkafka "github.com/andre1397/calculadora-TOTVS/pkg/kafka"
	"github.com/andre1397/calculadora-TOTVS/pkg/observability"
	"github.com/andre1397/calculadora-TOTVS/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("calculatord failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Info("starting calculatord",
		"version", cfg.ServiceVersion,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Telemetry.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownWithTimeout(logger, "tracer", shutdownTracer)
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName:       cfg.ServiceName,
		RuntimeCollectors: true,
	})
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	defer shutdownWithTimeout(logger, "meter provider", meterProvider.Shutdown)

	// Event publication.
	checks := map[string]rest.ReadinessCheck{}
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.Kafka.ClientID,
			WriteTimeout:  cfg.Kafka.WriteTimeout,
			SASLEnabled:   cfg.Kafka.SASLUsername != "",
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
			TLS:           cfg.Kafka.TLS,
		})
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close error", "error", err)
			}
		}()
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
		checks["kafka"] = producer.Ping
		logger.Info("publishing events to kafka", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	} else {
		publisher = messaging.NewLogEventPublisher(logger)
		logger.Info("kafka not configured, logging events")
	}

	// Use case.
	calculateUC, err := usecase.NewCalculateScheduleUseCase(publisher,
		meterProvider.Meter(cfg.ServiceName), otel.Tracer(cfg.ServiceName), logger)
	if err != nil {
		return fmt.Errorf("use case: %w", err)
	}

	// Auth.
	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	var httpAuth func(http.Handler) http.Handler
	if jwtSvc != nil {
		httpAuth = auth.HTTPMiddleware(jwtSvc, auth.ScopeCalculate, rest.UnauthenticatedPaths)
		logger.Info("JWT auth enabled", "scope", auth.ScopeCalculate)
	} else {
		logger.Warn("JWT auth not configured, serving unauthenticated")
	}

	// gRPC server.
	var creds credentials.TransportCredentials
	if cfg.TLS.Enabled() {
		creds, err = tlsutil.ServerCredentials(tlsutil.ServerOptions{
			CertFile:     cfg.TLS.CertFile,
			KeyFile:      cfg.TLS.KeyFile,
			ClientCAFile: cfg.TLS.ClientCAFile,
		})
		if err != nil {
			return fmt.Errorf("grpc tls: %w", err)
		}
	}
	grpcServer := grpcPresentation.NewServer(
		grpcPresentation.NewCalculatorHandler(calculateUC, logger),
		logger,
		grpcPresentation.ServerOptions{
			JWT:        jwtSvc,
			Creds:      creds,
			Reflection: cfg.GRPCReflection,
		},
	)

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Calculator:    rest.NewCalculatorHandler(calculateUC, logger),
		Health:        rest.NewHealthHandler(cfg.ServiceName, checks, logger),
		Metrics:       metricsHandler,
		Auth:          httpAuth,
		AllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:        logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("calculatord stopped")
	return serveErr
}

// newJWTService returns nil when no key material is configured. A public key
// takes precedence over the shared secret.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	jwtCfg := auth.JWTConfig{
		Issuer: cfg.Issuer,
		Leeway: 30 * time.Second,
	}
	switch {
	case cfg.PublicKey != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKey
	case cfg.PublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.Secret
	}
	return auth.NewJWTService(jwtCfg)
}

func shutdownWithTimeout(logger *slog.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown error", "component", name, "error", err)
	}
}
