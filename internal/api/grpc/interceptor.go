package grpc

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/tabletkv/tabletkv/internal/server"
	"github.com/tabletkv/tabletkv/pkg/observability"
)

// RequestIDHeader is the metadata key carrying the request id.
const RequestIDHeader = "x-request-id"

type requestIDKey struct{}

// RequestIDFromContext returns the request id the interceptor attached.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// extractRequestID extracts the request id from gRPC metadata or generates one.
func extractRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDHeader); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.New().String()
}

type coded interface {
	GetCode() int32
}

// UnaryInterceptor tags each call with a request id, rejects calls once
// shutdown has begun, and records per-method stats. shutdown and stats may
// be nil.
func UnaryInterceptor(shutdown *server.ShutdownManager, stats *observability.CallStats) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if shutdown != nil {
			if !shutdown.TrackRequest() {
				return nil, status.Error(codes.Unavailable, "tablet is shutting down")
			}
			defer shutdown.UntrackRequest()
		}

		requestID := extractRequestID(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))
		ctx = context.WithValue(ctx, requestIDKey{}, requestID)

		start := time.Now()
		resp, err := handler(ctx, req)

		if stats != nil {
			outcome := observability.OutcomeOK
			switch {
			case status.Code(err) == codes.DeadlineExceeded:
				outcome = observability.OutcomeTimeout
			case err != nil:
				outcome = observability.OutcomeError
			default:
				if c, ok := resp.(coded); ok && c.GetCode() != 0 {
					outcome = observability.OutcomeRejected
				}
			}
			stats.Record(path.Base(info.FullMethod), outcome, time.Since(start))
		}
		return resp, err
	}
}
