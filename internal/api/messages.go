package api

import (
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/rsvp"
)

type CreateEventRequest struct {
	Name         string `json:"name"`
	HasCeremony  bool   `json:"has_ceremony"`
	HasReception bool   `json:"has_reception"`
	Passcode     string `json:"passcode"`
}

type GetEventRequest struct {
	EventID string `json:"event_id"`
}

func (r *GetEventRequest) GetEventID() string { return r.EventID }

type EventResponse struct {
	Event *models.Event `json:"event"`
}

type HostLoginRequest struct {
	EventID  string `json:"event_id"`
	Passcode string `json:"passcode"`
}

func (r *HostLoginRequest) GetEventID() string { return r.EventID }

type HostLoginResponse struct {
	AccessToken string `json:"access_token"`
}

type FindGuestRequest struct {
	EventID string `json:"event_id"`
	Token   string `json:"token"`
}

func (r *FindGuestRequest) GetEventID() string { return r.EventID }

type GuestRequest struct {
	Guest *models.Guest `json:"guest"`
}

func (r *GuestRequest) GetEventID() string {
	if r.Guest == nil {
		return ""
	}
	return r.Guest.EventID
}

type GuestResponse struct {
	Guest *models.Guest `json:"guest"`
}

// SubmitResponseRequest runs the whole confirmation workflow server-side.
// An empty Token issues a new one.
type SubmitResponseRequest struct {
	EventID string    `json:"event_id"`
	Token   string    `json:"token,omitempty"`
	Form    rsvp.Form `json:"form"`
}

func (r *SubmitResponseRequest) GetEventID() string { return r.EventID }

type ListGuestsRequest struct {
	EventID string `json:"event_id"`
}

func (r *ListGuestsRequest) GetEventID() string { return r.EventID }

type ListGuestsResponse struct {
	Guests []*models.Guest `json:"guests"`
}

type ListPhotosRequest struct {
	EventID string `json:"event_id"`
	// Refresh reloads the collection from storage instead of returning the
	// one already held by the server.
	Refresh bool `json:"refresh,omitempty"`
}

func (r *ListPhotosRequest) GetEventID() string { return r.EventID }

type PhotosResponse struct {
	Photos []*models.Photo `json:"photos"`
}

type PhotoFile struct {
	Name        string `json:"name"`
	Data        []byte `json:"data"`
	ContentType string `json:"content_type,omitempty"`
	Caption     string `json:"caption,omitempty"`
}

type UploadPhotoRequest struct {
	EventID string    `json:"event_id"`
	File    PhotoFile `json:"file"`
}

func (r *UploadPhotoRequest) GetEventID() string { return r.EventID }

type PhotoResponse struct {
	Photo *models.Photo `json:"photo"`
}

type UploadPhotosRequest struct {
	EventID string      `json:"event_id"`
	Files   []PhotoFile `json:"files"`
}

func (r *UploadPhotosRequest) GetEventID() string { return r.EventID }

type DeletePhotoRequest struct {
	EventID string `json:"event_id"`
	PhotoID string `json:"photo_id"`
}

func (r *DeletePhotoRequest) GetEventID() string { return r.EventID }

type UpdateCaptionRequest struct {
	EventID string `json:"event_id"`
	PhotoID string `json:"photo_id"`
	Caption string `json:"caption"`
}

func (r *UpdateCaptionRequest) GetEventID() string { return r.EventID }

type ReorderPhotosRequest struct {
	EventID  string   `json:"event_id"`
	PhotoIDs []string `json:"photo_ids"`
}

func (r *ReorderPhotosRequest) GetEventID() string { return r.EventID }

// Ack reports whether a mutation was applied.
type Ack struct {
	OK bool `json:"ok"`
}
