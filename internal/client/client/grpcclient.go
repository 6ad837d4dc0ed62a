package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// maxMessageSize bounds photo payloads in both directions.
const maxMessageSize = 64 << 20

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	events      api.EventServiceClient
	rsvp        api.RSVPServiceClient
	photos      api.PhotoServiceClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken sets the host token sent with every following call.
// An empty token sends none.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if t := s.token(); t != "" {
		ctx = withAccessToken(ctx, t)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewEventKeeperClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxMessageSize), grpc.MaxCallSendMsgSize(maxMessageSize)),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.events = api.NewEventServiceClient(conn)
	s.rsvp = api.NewRSVPServiceClient(conn)
	s.photos = api.NewPhotoServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) CreateEvent(ctx context.Context, name string, ceremony, reception bool, passcode []byte) (*models.Event, error) {

	resp, err := s.events.CreateEvent(ctx, &api.CreateEventRequest{
		Name: name, HasCeremony: ceremony, HasReception: reception, Passcode: string(passcode),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Event, nil

}

func (s *GRPCClient) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {

	resp, err := s.events.GetEvent(ctx, &api.GetEventRequest{EventID: eventID})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Event, nil

}

// HostLogin exchanges the event passcode for a host token and starts using it.
func (s *GRPCClient) HostLogin(ctx context.Context, eventID string, passcode []byte) (string, error) {

	resp, err := s.events.HostLogin(ctx, &api.HostLoginRequest{EventID: eventID, Passcode: string(passcode)})
	if err != nil {
		return "", s.mapError(err)
	}

	s.SetAccessToken(resp.AccessToken)
	return resp.AccessToken, nil

}

func (s *GRPCClient) FindByToken(ctx context.Context, eventID, token string) (*models.Guest, error) {

	resp, err := s.rsvp.FindGuest(ctx, &api.FindGuestRequest{EventID: eventID, Token: token})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Guest, nil

}

func (s *GRPCClient) Insert(ctx context.Context, g *models.Guest) (*models.Guest, error) {

	resp, err := s.rsvp.InsertGuest(ctx, &api.GuestRequest{Guest: g})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Guest, nil

}

func (s *GRPCClient) Update(ctx context.Context, g *models.Guest) (*models.Guest, error) {

	resp, err := s.rsvp.UpdateGuest(ctx, &api.GuestRequest{Guest: g})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Guest, nil

}

func (s *GRPCClient) ListGuests(ctx context.Context, eventID string) ([]*models.Guest, error) {

	resp, err := s.rsvp.ListGuests(ctx, &api.ListGuestsRequest{EventID: eventID})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Guests, nil

}

func (s *GRPCClient) ListPhotos(ctx context.Context, eventID string, refresh bool) ([]*models.Photo, error) {

	resp, err := s.photos.ListPhotos(ctx, &api.ListPhotosRequest{EventID: eventID, Refresh: refresh})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Photos, nil

}

func (s *GRPCClient) UploadPhoto(ctx context.Context, eventID string, file api.PhotoFile) (*models.Photo, error) {

	resp, err := s.photos.UploadPhoto(ctx, &api.UploadPhotoRequest{EventID: eventID, File: file})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Photo, nil

}

func (s *GRPCClient) UploadPhotos(ctx context.Context, eventID string, files []api.PhotoFile) ([]*models.Photo, error) {

	resp, err := s.photos.UploadPhotos(ctx, &api.UploadPhotosRequest{EventID: eventID, Files: files})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Photos, nil

}

func (s *GRPCClient) DeletePhoto(ctx context.Context, eventID, photoID string) (bool, error) {

	resp, err := s.photos.DeletePhoto(ctx, &api.DeletePhotoRequest{EventID: eventID, PhotoID: photoID})
	if err != nil {
		return false, s.mapError(err)
	}

	return resp.OK, nil

}

func (s *GRPCClient) UpdateCaption(ctx context.Context, eventID, photoID, caption string) (bool, error) {

	resp, err := s.photos.UpdateCaption(ctx, &api.UpdateCaptionRequest{EventID: eventID, PhotoID: photoID, Caption: caption})
	if err != nil {
		return false, s.mapError(err)
	}

	return resp.OK, nil

}

func (s *GRPCClient) ReorderPhotos(ctx context.Context, eventID string, ids []string) ([]*models.Photo, error) {

	resp, err := s.photos.ReorderPhotos(ctx, &api.ReorderPhotosRequest{EventID: eventID, PhotoIDs: ids})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp.Photos, nil

}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.InvalidArgument:
		return invalidArgument(st)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func invalidArgument(st *status.Status) error {
	e := &InvalidArgumentError{Message: st.Message(), Fields: map[string]string{}}
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			for _, v := range br.GetFieldViolations() {
				e.Fields[v.GetField()] = v.GetDescription()
			}
		}
	}
	return e
}
