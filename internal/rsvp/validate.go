// Package rsvp implements the guest confirmation workflow: a four step form
// that is validated step by step and committed as a create-or-update keyed by
// the guest's confirmation token.
package rsvp

import (
	"regexp"
	"strings"
)

// Step is a 1-indexed position in the form.
type Step int

const (
	StepIdentity Step = iota + 1
	StepAttendance
	StepPlusOne
	StepDetails
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepAttendance:
		return "attendance"
	case StepPlusOne:
		return "plus-one"
	case StepDetails:
		return "details"
	default:
		return "unknown"
	}
}

// Field error keys.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPlusOneName = "plus_one_name"
)

// FieldErrors maps a form field to a human readable message.
type FieldErrors map[string]string

// Form holds what the guest has entered so far.
type Form struct {
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
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateStep checks the fields belonging to step. Attendance and free text
// steps always pass; a guest declining every sub-event is a valid answer.
func ValidateStep(step Step, f Form) (bool, FieldErrors) {
	errs := FieldErrors{}

	switch step {
	case StepIdentity:
		if strings.TrimSpace(f.Name) == "" {
			errs[FieldName] = "Name is required"
		}
		email := strings.TrimSpace(f.Email)
		switch {
		case email == "":
			errs[FieldEmail] = "Email is required"
		case !ValidEmail(email):
			errs[FieldEmail] = "Enter a valid email address"
		}
	case StepPlusOne:
		if f.PlusOne && strings.TrimSpace(f.PlusOneName) == "" {
			errs[FieldPlusOneName] = "Plus-one name is required"
		}
	}

	return len(errs) == 0, errs
}
