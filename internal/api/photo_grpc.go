package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	PhotoService_ListPhotos_FullMethodName    = "/eventkeeper.PhotoService/ListPhotos"
	PhotoService_UploadPhoto_FullMethodName   = "/eventkeeper.PhotoService/UploadPhoto"
	PhotoService_UploadPhotos_FullMethodName  = "/eventkeeper.PhotoService/UploadPhotos"
	PhotoService_DeletePhoto_FullMethodName   = "/eventkeeper.PhotoService/DeletePhoto"
	PhotoService_UpdateCaption_FullMethodName = "/eventkeeper.PhotoService/UpdateCaption"
	PhotoService_ReorderPhotos_FullMethodName = "/eventkeeper.PhotoService/ReorderPhotos"
)

type PhotoServiceServer interface {
	ListPhotos(context.Context, *ListPhotosRequest) (*PhotosResponse, error)
	UploadPhoto(context.Context, *UploadPhotoRequest) (*PhotoResponse, error)
	UploadPhotos(context.Context, *UploadPhotosRequest) (*PhotosResponse, error)
	DeletePhoto(context.Context, *DeletePhotoRequest) (*Ack, error)
	UpdateCaption(context.Context, *UpdateCaptionRequest) (*Ack, error)
	ReorderPhotos(context.Context, *ReorderPhotosRequest) (*PhotosResponse, error)
}

type UnimplementedPhotoServiceServer struct{}

func (UnimplementedPhotoServiceServer) ListPhotos(context.Context, *ListPhotosRequest) (*PhotosResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPhotos not implemented")
}
func (UnimplementedPhotoServiceServer) UploadPhoto(context.Context, *UploadPhotoRequest) (*PhotoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadPhoto not implemented")
}
func (UnimplementedPhotoServiceServer) UploadPhotos(context.Context, *UploadPhotosRequest) (*PhotosResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadPhotos not implemented")
}
func (UnimplementedPhotoServiceServer) DeletePhoto(context.Context, *DeletePhotoRequest) (*Ack, error) {
	return nil, status.Error(codes.Unimplemented, "method DeletePhoto not implemented")
}
func (UnimplementedPhotoServiceServer) UpdateCaption(context.Context, *UpdateCaptionRequest) (*Ack, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateCaption not implemented")
}
func (UnimplementedPhotoServiceServer) ReorderPhotos(context.Context, *ReorderPhotosRequest) (*PhotosResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReorderPhotos not implemented")
}

var PhotoService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "eventkeeper.PhotoService",
	HandlerType: (*PhotoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListPhotos", Handler: unary(PhotoService_ListPhotos_FullMethodName, PhotoServiceServer.ListPhotos)},
		{MethodName: "UploadPhoto", Handler: unary(PhotoService_UploadPhoto_FullMethodName, PhotoServiceServer.UploadPhoto)},
		{MethodName: "UploadPhotos", Handler: unary(PhotoService_UploadPhotos_FullMethodName, PhotoServiceServer.UploadPhotos)},
		{MethodName: "DeletePhoto", Handler: unary(PhotoService_DeletePhoto_FullMethodName, PhotoServiceServer.DeletePhoto)},
		{MethodName: "UpdateCaption", Handler: unary(PhotoService_UpdateCaption_FullMethodName, PhotoServiceServer.UpdateCaption)},
		{MethodName: "ReorderPhotos", Handler: unary(PhotoService_ReorderPhotos_FullMethodName, PhotoServiceServer.ReorderPhotos)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eventkeeper/photo",
}

func RegisterPhotoServiceServer(s grpc.ServiceRegistrar, srv PhotoServiceServer) {
	s.RegisterService(&PhotoService_ServiceDesc, srv)
}

type PhotoServiceClient interface {
	ListPhotos(ctx context.Context, in *ListPhotosRequest, opts ...grpc.CallOption) (*PhotosResponse, error)
	UploadPhoto(ctx context.Context, in *UploadPhotoRequest, opts ...grpc.CallOption) (*PhotoResponse, error)
	UploadPhotos(ctx context.Context, in *UploadPhotosRequest, opts ...grpc.CallOption) (*PhotosResponse, error)
	DeletePhoto(ctx context.Context, in *DeletePhotoRequest, opts ...grpc.CallOption) (*Ack, error)
	UpdateCaption(ctx context.Context, in *UpdateCaptionRequest, opts ...grpc.CallOption) (*Ack, error)
	ReorderPhotos(ctx context.Context, in *ReorderPhotosRequest, opts ...grpc.CallOption) (*PhotosResponse, error)
}

type photoServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPhotoServiceClient(cc grpc.ClientConnInterface) PhotoServiceClient {
	return &photoServiceClient{cc}
}

func (c *photoServiceClient) ListPhotos(ctx context.Context, in *ListPhotosRequest, opts ...grpc.CallOption) (*PhotosResponse, error) {
	return invoke[PhotosResponse](ctx, c.cc, PhotoService_ListPhotos_FullMethodName, in, opts)
}

func (c *photoServiceClient) UploadPhoto(ctx context.Context, in *UploadPhotoRequest, opts ...grpc.CallOption) (*PhotoResponse, error) {
	return invoke[PhotoResponse](ctx, c.cc, PhotoService_UploadPhoto_FullMethodName, in, opts)
}

func (c *photoServiceClient) UploadPhotos(ctx context.Context, in *UploadPhotosRequest, opts ...grpc.CallOption) (*PhotosResponse, error) {
	return invoke[PhotosResponse](ctx, c.cc, PhotoService_UploadPhotos_FullMethodName, in, opts)
}

func (c *photoServiceClient) DeletePhoto(ctx context.Context, in *DeletePhotoRequest, opts ...grpc.CallOption) (*Ack, error) {
	return invoke[Ack](ctx, c.cc, PhotoService_DeletePhoto_FullMethodName, in, opts)
}

func (c *photoServiceClient) UpdateCaption(ctx context.Context, in *UpdateCaptionRequest, opts ...grpc.CallOption) (*Ack, error) {
	return invoke[Ack](ctx, c.cc, PhotoService_UpdateCaption_FullMethodName, in, opts)
}

func (c *photoServiceClient) ReorderPhotos(ctx context.Context, in *ReorderPhotosRequest, opts ...grpc.CallOption) (*PhotosResponse, error) {
	return invoke[PhotosResponse](ctx, c.cc, PhotoService_ReorderPhotos_FullMethodName, in, opts)
}
