// Package photos manages an event's photo gallery.
//
// A Manager writes uploads to a durable object store plus a metadata table
// when both are reachable, and silently falls back to a process-local store
// otherwise. Callers see the same *models.Photo either way; the Location
// field tells which store holds the bytes, and it never changes after the
// upload.
package photos
