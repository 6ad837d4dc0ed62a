// Package cli provides the eventkeeper command-line client.
//
// Commands are built with cobra. Guests confirm attendance with `rsvp`,
// which walks the four step form interactively and remembers the issued
// confirmation token locally so a later `rsvp --edit` reopens the same
// response. Hosts create an event, `login` with its passcode and then
// manage the photo gallery and guest list.
//
// Per-event tokens and the current event are kept in a small SQLite file
// (see services.Session).
package cli
