package models

import "time"

// Guest is one invitee's RSVP response for one event.
//
// ConfirmationToken is a capability secret: whoever holds it may re-edit
// the response. It is unique per event and never changes once issued.
type Guest struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	AttendingCeremony  bool `json:"attending_ceremony"`
	AttendingReception bool `json:"attending_reception"`

	PlusOne        bool   `json:"plus_one"`
	PlusOneName    string `json:"plus_one_name,omitempty"`
	PlusOneDietary string `json:"plus_one_dietary,omitempty"`

	DietaryRestrictions string `json:"dietary_restrictions,omitempty"`
	SpecialRequests     string `json:"special_requests,omitempty"`
	Message             string `json:"message,omitempty"`

	Confirmed         bool       `json:"confirmed"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	ConfirmationToken string     `json:"confirmation_token"`
	LastUpdated       time.Time  `json:"last_updated"`
	CreatedAt         time.Time  `json:"created_at"`
}
