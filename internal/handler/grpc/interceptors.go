package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	traceIDKey       = "x-trace-id"
	authorizationKey = "authorization"
)

func firstValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// withTraceID attaches a logger carrying trace_id to the call context and
// echoes the id in the response header.
func (h *Handler) withTraceID(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstValue(ctx, traceIDKey)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID))

	return handler(l.WithContext(ctx), req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// auth authenticates the signer of every non-public call. The token must
// cover the JSON encoding of the request message.
func (h *Handler) auth(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}
	log := logger.FromContext(ctx)

	header := firstValue(ctx, authorizationKey)
	if header == "" {
		log.Err(errMissingToken).Str("method", info.FullMethod).Send()
		return nil, toStatus(errMissingToken)
	}
	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return nil, toStatus(errInvalidToken)
	}

	payload, err := Codec{}.Marshal(req)
	if err != nil {
		return nil, toStatus(err)
	}

	signer, err := h.services.AuthService.Authenticate(ctx, token, payload)
	if err != nil {
		log.Debug().Err(err).Str("method", info.FullMethod).Msg("call rejected")
		return nil, toStatus(err)
	}

	return handler(utils.WithSigner(ctx, signer), req)
}
