package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	EventService_CreateEvent_FullMethodName = "/eventkeeper.EventService/CreateEvent"
	EventService_GetEvent_FullMethodName    = "/eventkeeper.EventService/GetEvent"
	EventService_HostLogin_FullMethodName   = "/eventkeeper.EventService/HostLogin"
)

type EventServiceServer interface {
	CreateEvent(context.Context, *CreateEventRequest) (*EventResponse, error)
	GetEvent(context.Context, *GetEventRequest) (*EventResponse, error)
	HostLogin(context.Context, *HostLoginRequest) (*HostLoginResponse, error)
}

// UnimplementedEventServiceServer can be embedded for forward compatibility.
type UnimplementedEventServiceServer struct{}

func (UnimplementedEventServiceServer) CreateEvent(context.Context, *CreateEventRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEvent not implemented")
}
func (UnimplementedEventServiceServer) GetEvent(context.Context, *GetEventRequest) (*EventResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEvent not implemented")
}
func (UnimplementedEventServiceServer) HostLogin(context.Context, *HostLoginRequest) (*HostLoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HostLogin not implemented")
}

var EventService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "eventkeeper.EventService",
	HandlerType: (*EventServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateEvent", Handler: unary(EventService_CreateEvent_FullMethodName, EventServiceServer.CreateEvent)},
		{MethodName: "GetEvent", Handler: unary(EventService_GetEvent_FullMethodName, EventServiceServer.GetEvent)},
		{MethodName: "HostLogin", Handler: unary(EventService_HostLogin_FullMethodName, EventServiceServer.HostLogin)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eventkeeper/event",
}

func RegisterEventServiceServer(s grpc.ServiceRegistrar, srv EventServiceServer) {
	s.RegisterService(&EventService_ServiceDesc, srv)
}

type EventServiceClient interface {
	CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*EventResponse, error)
	GetEvent(ctx context.Context, in *GetEventRequest, opts ...grpc.CallOption) (*EventResponse, error)
	HostLogin(ctx context.Context, in *HostLoginRequest, opts ...grpc.CallOption) (*HostLoginResponse, error)
}

type eventServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEventServiceClient(cc grpc.ClientConnInterface) EventServiceClient {
	return &eventServiceClient{cc}
}

func (c *eventServiceClient) CreateEvent(ctx context.Context, in *CreateEventRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	return invoke[EventResponse](ctx, c.cc, EventService_CreateEvent_FullMethodName, in, opts)
}

func (c *eventServiceClient) GetEvent(ctx context.Context, in *GetEventRequest, opts ...grpc.CallOption) (*EventResponse, error) {
	return invoke[EventResponse](ctx, c.cc, EventService_GetEvent_FullMethodName, in, opts)
}

func (c *eventServiceClient) HostLogin(ctx context.Context, in *HostLoginRequest, opts ...grpc.CallOption) (*HostLoginResponse, error) {
	return invoke[HostLoginResponse](ctx, c.cc, EventService_HostLogin_FullMethodName, in, opts)
}
