package models

import "time"

// Event is the hosted occasion. HasCeremony and HasReception select which
// attendance flags the RSVP form asks for.
type Event struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	HasCeremony  bool      `json:"has_ceremony"`
	HasReception bool      `json:"has_reception"`
	CreatedAt    time.Time `json:"created_at"`

	HostPasscodeHash []byte `json:"-"`
}
