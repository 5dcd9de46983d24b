package grpc

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs every unary call with method, code and duration.
func loggingInterceptor(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.InfoContext(ctx, "rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}

// recoveryInterceptor turns a handler panic into codes.Internal.
func recoveryInterceptor(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic serving rpc",
					"method", info.FullMethod,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
