package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	RSVPService_FindGuest_FullMethodName      = "/eventkeeper.RSVPService/FindGuest"
	RSVPService_InsertGuest_FullMethodName    = "/eventkeeper.RSVPService/InsertGuest"
	RSVPService_UpdateGuest_FullMethodName    = "/eventkeeper.RSVPService/UpdateGuest"
	RSVPService_SubmitResponse_FullMethodName = "/eventkeeper.RSVPService/SubmitResponse"
	RSVPService_ListGuests_FullMethodName     = "/eventkeeper.RSVPService/ListGuests"
)

type RSVPServiceServer interface {
	FindGuest(context.Context, *FindGuestRequest) (*GuestResponse, error)
	InsertGuest(context.Context, *GuestRequest) (*GuestResponse, error)
	UpdateGuest(context.Context, *GuestRequest) (*GuestResponse, error)
	SubmitResponse(context.Context, *SubmitResponseRequest) (*GuestResponse, error)
	ListGuests(context.Context, *ListGuestsRequest) (*ListGuestsResponse, error)
}

type UnimplementedRSVPServiceServer struct{}

func (UnimplementedRSVPServiceServer) FindGuest(context.Context, *FindGuestRequest) (*GuestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindGuest not implemented")
}
func (UnimplementedRSVPServiceServer) InsertGuest(context.Context, *GuestRequest) (*GuestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InsertGuest not implemented")
}
func (UnimplementedRSVPServiceServer) UpdateGuest(context.Context, *GuestRequest) (*GuestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateGuest not implemented")
}
func (UnimplementedRSVPServiceServer) SubmitResponse(context.Context, *SubmitResponseRequest) (*GuestResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitResponse not implemented")
}
func (UnimplementedRSVPServiceServer) ListGuests(context.Context, *ListGuestsRequest) (*ListGuestsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListGuests not implemented")
}

var RSVPService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "eventkeeper.RSVPService",
	HandlerType: (*RSVPServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindGuest", Handler: unary(RSVPService_FindGuest_FullMethodName, RSVPServiceServer.FindGuest)},
		{MethodName: "InsertGuest", Handler: unary(RSVPService_InsertGuest_FullMethodName, RSVPServiceServer.InsertGuest)},
		{MethodName: "UpdateGuest", Handler: unary(RSVPService_UpdateGuest_FullMethodName, RSVPServiceServer.UpdateGuest)},
		{MethodName: "SubmitResponse", Handler: unary(RSVPService_SubmitResponse_FullMethodName, RSVPServiceServer.SubmitResponse)},
		{MethodName: "ListGuests", Handler: unary(RSVPService_ListGuests_FullMethodName, RSVPServiceServer.ListGuests)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eventkeeper/rsvp",
}

func RegisterRSVPServiceServer(s grpc.ServiceRegistrar, srv RSVPServiceServer) {
	s.RegisterService(&RSVPService_ServiceDesc, srv)
}

type RSVPServiceClient interface {
	FindGuest(ctx context.Context, in *FindGuestRequest, opts ...grpc.CallOption) (*GuestResponse, error)
	InsertGuest(ctx context.Context, in *GuestRequest, opts ...grpc.CallOption) (*GuestResponse, error)
	UpdateGuest(ctx context.Context, in *GuestRequest, opts ...grpc.CallOption) (*GuestResponse, error)
	SubmitResponse(ctx context.Context, in *SubmitResponseRequest, opts ...grpc.CallOption) (*GuestResponse, error)
	ListGuests(ctx context.Context, in *ListGuestsRequest, opts ...grpc.CallOption) (*ListGuestsResponse, error)
}

type rsvpServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRSVPServiceClient(cc grpc.ClientConnInterface) RSVPServiceClient {
	return &rsvpServiceClient{cc}
}

func (c *rsvpServiceClient) FindGuest(ctx context.Context, in *FindGuestRequest, opts ...grpc.CallOption) (*GuestResponse, error) {
	return invoke[GuestResponse](ctx, c.cc, RSVPService_FindGuest_FullMethodName, in, opts)
}

func (c *rsvpServiceClient) InsertGuest(ctx context.Context, in *GuestRequest, opts ...grpc.CallOption) (*GuestResponse, error) {
	return invoke[GuestResponse](ctx, c.cc, RSVPService_InsertGuest_FullMethodName, in, opts)
}

func (c *rsvpServiceClient) UpdateGuest(ctx context.Context, in *GuestRequest, opts ...grpc.CallOption) (*GuestResponse, error) {
	return invoke[GuestResponse](ctx, c.cc, RSVPService_UpdateGuest_FullMethodName, in, opts)
}

func (c *rsvpServiceClient) SubmitResponse(ctx context.Context, in *SubmitResponseRequest, opts ...grpc.CallOption) (*GuestResponse, error) {
	return invoke[GuestResponse](ctx, c.cc, RSVPService_SubmitResponse_FullMethodName, in, opts)
}

func (c *rsvpServiceClient) ListGuests(ctx context.Context, in *ListGuestsRequest, opts ...grpc.CallOption) (*ListGuestsResponse, error) {
	return invoke[ListGuestsResponse](ctx, c.cc, RSVPService_ListGuests_FullMethodName, in, opts)
}
