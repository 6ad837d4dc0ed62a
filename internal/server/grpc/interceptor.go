package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

// EventIDKey holds the event id of an authenticated host.
const EventIDKey ctxKey = "eventID"

// hostMethods require a host access token for the event named in the request.
var hostMethods = map[string]bool{
	api.RSVPService_ListGuests_FullMethodName:     true,
	api.PhotoService_UploadPhoto_FullMethodName:   true,
	api.PhotoService_UploadPhotos_FullMethodName:  true,
	api.PhotoService_DeletePhoto_FullMethodName:   true,
	api.PhotoService_UpdateCaption_FullMethodName: true,
	api.PhotoService_ReorderPhotos_FullMethodName: true,
}

type eventScoped interface {
	GetEventID() string
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if hostMethods[info.FullMethod] {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		eventID, err := auth.GetEventIDFromToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, "token expired")
			}
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		r, ok := req.(eventScoped)
		if !ok || r.GetEventID() != eventID {
			return nil, status.Error(codes.PermissionDenied, "token does not grant access to this event")
		}

		ctx = context.WithValue(ctx, EventIDKey, eventID)
		ctx = logging.ContextWith(ctx, "event_id", eventID)
	}

	return handler(ctx, req)
}

// loggingInterceptor tags the request context so that every log line written
// while serving it carries the request id and method, then logs the outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	ctx = logging.ContextWith(ctx, "request_id", uuid.NewString(), "method", info.FullMethod)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "request handled", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "request failed", append(args, "err", err)...)
	default:
		s.logger.Info(ctx, "request rejected", append(args, "err", err)...)
	}
	return resp, err
}

func (s *GRPCServer) timeoutInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if s.requestTimeout <= 0 {
		return handler(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	return handler(ctx, req)
}
