package grpc

import (
	"context"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) CreateEvent(ctx context.Context, req *api.CreateEventRequest) (*api.EventResponse, error) {

	e, err := s.events.Create(ctx, req.Name, req.HasCeremony, req.HasReception, []byte(req.Passcode))
	if err != nil {
		s.logger.Error(ctx, "event create failed", "err", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Event created", "event_id", e.ID)
	return &api.EventResponse{Event: e}, nil

}

func (s *GRPCServer) GetEvent(ctx context.Context, req *api.GetEventRequest) (*api.EventResponse, error) {

	e, err := s.events.Get(ctx, req.EventID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.EventResponse{Event: e}, nil

}

func (s *GRPCServer) HostLogin(ctx context.Context, req *api.HostLoginRequest) (*api.HostLoginResponse, error) {

	token, err := s.events.HostLogin(ctx, req.EventID, []byte(req.Passcode))
	if err != nil {
		s.logger.Warn(ctx, "host login rejected", "event_id", req.EventID)
		return nil, toStatus(err)
	}

	return &api.HostLoginResponse{AccessToken: token}, nil

}

func (s *GRPCServer) FindGuest(ctx context.Context, req *api.FindGuestRequest) (*api.GuestResponse, error) {

	g, err := s.guests.FindByToken(ctx, req.EventID, req.Token)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.GuestResponse{Guest: g}, nil

}

func (s *GRPCServer) InsertGuest(ctx context.Context, req *api.GuestRequest) (*api.GuestResponse, error) {

	if req.Guest == nil {
		return nil, status.Error(codes.InvalidArgument, "guest is required")
	}

	g, err := s.guests.Insert(ctx, req.Guest)
	if err != nil {
		s.logger.Error(ctx, "guest insert failed", "err", err)
		return nil, toStatus(err)
	}

	return &api.GuestResponse{Guest: g}, nil

}

func (s *GRPCServer) UpdateGuest(ctx context.Context, req *api.GuestRequest) (*api.GuestResponse, error) {

	if req.Guest == nil {
		return nil, status.Error(codes.InvalidArgument, "guest is required")
	}

	g, err := s.guests.Update(ctx, req.Guest)
	if err != nil {
		s.logger.Error(ctx, "guest update failed", "err", err)
		return nil, toStatus(err)
	}

	return &api.GuestResponse{Guest: g}, nil

}

func (s *GRPCServer) SubmitResponse(ctx context.Context, req *api.SubmitResponseRequest) (*api.GuestResponse, error) {

	e, err := s.events.Get(ctx, req.EventID)
	if err != nil {
		return nil, toStatus(err)
	}

	g, err := s.guests.Submit(ctx, e, req.Token, req.Form)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "RSVP received", "event_id", e.ID, "guest_id", g.ID)
	return &api.GuestResponse{Guest: g}, nil

}

func (s *GRPCServer) ListGuests(ctx context.Context, req *api.ListGuestsRequest) (*api.ListGuestsResponse, error) {

	list, err := s.guests.List(ctx, req.EventID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListGuestsResponse{Guests: list}, nil

}
