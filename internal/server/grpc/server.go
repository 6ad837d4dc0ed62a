package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/photos"
	"github.com/dmitrijs2005/eventkeeper/internal/rsvp"
	"google.golang.org/grpc"
)

type eventSvc interface {
	Create(ctx context.Context, name string, ceremony, reception bool, passcode []byte) (*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	HostLogin(ctx context.Context, eventID string, passcode []byte) (string, error)
}

type guestSvc interface {
	rsvp.GuestStore
	List(ctx context.Context, eventID string) ([]*models.Guest, error)
	Submit(ctx context.Context, e *models.Event, token string, f rsvp.Form) (*models.Guest, error)
}

type photoManagers interface {
	Get(eventID string) *photos.Manager
	Lookup(eventID string) (*photos.Manager, bool)
}

type GRPCServer struct {
	api.UnimplementedEventServiceServer
	api.UnimplementedRSVPServiceServer
	api.UnimplementedPhotoServiceServer

	address        string
	events         eventSvc
	guests         guestSvc
	photos         photoManagers
	logger         logging.Logger
	jwtSecret      []byte
	requestTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, es eventSvc, gs guestSvc, pm photoManagers, secretKey string, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		events:         es,
		guests:         gs,
		photos:         pm,
		jwtSecret:      []byte(secretKey),
		requestTimeout: requestTimeout,
	}
}

func (s *GRPCServer) register(srv *grpc.Server) {
	api.RegisterEventServiceServer(srv, s)
	api.RegisterRSVPServiceServer(srv, s)
	api.RegisterPhotoServiceServer(srv, s)
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// photo uploads carry whole files
	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(maxMessageSize),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.timeoutInterceptor, s.accessTokenInterceptor),
	)
	s.register(srv)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

const maxMessageSize = 64 << 20
