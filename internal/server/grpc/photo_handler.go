package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/photos"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// manager returns the photo manager of an event, loading its collection on
// first use so mutations see the stored photos.
func (s *GRPCServer) manager(ctx context.Context, eventID string) *photos.Manager {
	m := s.photos.Get(eventID)
	if !m.Initialized() {
		m.List(ctx)
	}
	return m
}

func toFile(f api.PhotoFile) photos.File {
	return photos.File{Name: f.Name, Data: f.Data, ContentType: f.ContentType, Caption: f.Caption}
}

// eventExists reports whether id names a stored event.
func (s *GRPCServer) eventExists(ctx context.Context, id string) bool {
	if !models.IsValidID(id) {
		return false
	}
	if _, err := s.events.Get(ctx, id); err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "event lookup failed", "event_id", id, "err", err)
		}
		return false
	}
	return true
}

// ListPhotos is public, so a manager is only created for events that exist.
func (s *GRPCServer) ListPhotos(ctx context.Context, req *api.ListPhotosRequest) (*api.PhotosResponse, error) {

	m, ok := s.photos.Lookup(req.EventID)
	if !ok {
		if !s.eventExists(ctx, req.EventID) {
			return &api.PhotosResponse{Photos: []*models.Photo{}}, nil
		}
		m = s.photos.Get(req.EventID)
	}

	if req.Refresh || !m.Initialized() {
		return &api.PhotosResponse{Photos: m.List(ctx)}, nil
	}

	return &api.PhotosResponse{Photos: m.Photos()}, nil

}

func (s *GRPCServer) UploadPhoto(ctx context.Context, req *api.UploadPhotoRequest) (*api.PhotoResponse, error) {

	m := s.manager(ctx, req.EventID)

	p := m.Upload(ctx, toFile(req.File))
	if p == nil {
		if err := ctx.Err(); err != nil {
			return nil, status.FromContextError(err).Err()
		}
		return nil, status.Error(codes.InvalidArgument, "file is not a readable image")
	}

	s.logger.Info(ctx, "Photo uploaded", "event_id", req.EventID, "photo_id", p.ID, "location", p.Location)
	return &api.PhotoResponse{Photo: p}, nil

}

func (s *GRPCServer) UploadPhotos(ctx context.Context, req *api.UploadPhotosRequest) (*api.PhotosResponse, error) {

	m := s.manager(ctx, req.EventID)

	files := make([]photos.File, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, toFile(f))
	}

	return &api.PhotosResponse{Photos: m.UploadMultiple(ctx, files)}, nil

}

func (s *GRPCServer) DeletePhoto(ctx context.Context, req *api.DeletePhotoRequest) (*api.Ack, error) {

	ok := s.manager(ctx, req.EventID).Delete(ctx, req.PhotoID)
	return &api.Ack{OK: ok}, nil

}

func (s *GRPCServer) UpdateCaption(ctx context.Context, req *api.UpdateCaptionRequest) (*api.Ack, error) {

	ok := s.manager(ctx, req.EventID).UpdateCaption(ctx, req.PhotoID, req.Caption)
	return &api.Ack{OK: ok}, nil

}

func (s *GRPCServer) ReorderPhotos(ctx context.Context, req *api.ReorderPhotosRequest) (*api.PhotosResponse, error) {

	return &api.PhotosResponse{Photos: s.manager(ctx, req.EventID).Reorder(ctx, req.PhotoIDs)}, nil

}
