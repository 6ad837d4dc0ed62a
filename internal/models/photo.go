// Package models defines the data shared by the photo gallery, the RSVP
// workflow, their persistence layers and the transport.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/google/uuid"
)

// StorageLocation tells where the bytes of a photo live.
type StorageLocation string

const (
	// StorageRemote photos are backed by the object store and a metadata row.
	StorageRemote StorageLocation = "remote"
	// StorageLocal photos exist only in process memory and vanish on restart.
	StorageLocal StorageLocation = "local"
)

// Photo is one image attached to an event.
type Photo struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	// Caption is empty when the host has not set one.
	Caption  string `json:"caption,omitempty"`
	Size     int64  `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MimeType string `json:"mime_type"`
	// StoragePath is the object key for remote photos and "local/..." otherwise.
	StoragePath string          `json:"storage_path"`
	Location    StorageLocation `json:"location"`
	// Position is the persisted gallery order; nil until the host reorders.
	Position  *int      `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLocal reports whether the photo is held only in process memory.
func (p *Photo) IsLocal() bool {
	return p.Location == StorageLocal || strings.HasPrefix(p.StoragePath, common.LocalStoragePrefix)
}

// Clone returns a copy that does not share the Position pointer.
func (p *Photo) Clone() *Photo {
	c := *p
	if p.Position != nil {
		pos := *p.Position
		c.Position = &pos
	}
	return &c
}

// IsValidID reports whether id has the canonical 36-character UUID shape the
// relational store uses for primary keys.
func IsValidID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
