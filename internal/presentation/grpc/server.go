package grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/andre1397/calculadora-TOTVS/pkg/auth"
)

// HealthMethods are served without a token when auth is enabled.
var HealthMethods = []string{
	"/grpc.health.v1.Health/Check",
	"/grpc.health.v1.Health/Watch",
}

// ServerOptions are the optional features of the gRPC listener.
type ServerOptions struct {
	// JWT enables token auth on every method except the health service.
	JWT *auth.JWTService

	// Creds enables TLS.
	Creds credentials.TransportCredentials

	Reflection bool
}

// Server wraps a gRPC server with the calculator handler registered.
type Server struct {
	gs     *grpclib.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(handler CalculatorServiceServer, logger *slog.Logger, opts ServerOptions) *Server {
	interceptors := []grpclib.UnaryServerInterceptor{
		loggingInterceptor(logger),
		recoveryInterceptor(logger),
	}
	if opts.JWT != nil {
		interceptors = append(interceptors, auth.UnaryAuthInterceptor(opts.JWT, auth.ScopeCalculate, HealthMethods))
	}

	serverOpts := []grpclib.ServerOption{grpclib.ChainUnaryInterceptor(interceptors...)}
	if opts.Creds != nil {
		serverOpts = append(serverOpts, grpclib.Creds(opts.Creds))
		logger.Info("gRPC TLS enabled")
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpclib.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(CalculatorServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterCalculatorServiceServer(gs, handler)

	return &Server{
		gs:     gs,
		health: healthSrv,
		logger: logger,
	}
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and stops the server
// gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
