package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/eventkeeper/internal/client/client"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newGuestInput = "Ann Lee\nann@example.com\n\n" + // identity
	"y\nn\n" + // attendance
	"y\nTom\n\n" + // plus-one
	"vegan\n\nSee you!\n" + // details
	"\n" // submit

func TestEventCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("pw123456\npw123456\n", "event", "create", "Garden party", "--no-reception")
	assert.Contains(t, out, "Event:     Garden party")
	assert.Contains(t, out, "Reception: no")

	// the creator is logged in and the event is current
	out = h.mustRun("", "guests")
	assert.Contains(t, out, "No responses yet.")

	out = h.mustRun("", "event", "show")
	assert.Contains(t, out, "Garden party")

	out = h.mustRun("", "event", "use", testEventID)
	assert.Contains(t, out, "Now using \"Ann & Bob\"")

	out = h.mustRun("", "event", "show")
	assert.Contains(t, out, testEventID)
}

func TestEventCreate_PasscodeMismatch(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("one\ntwo\n", "event", "create", "Party")
	require.EqualError(t, err, "passcodes do not match")
}

func TestEventShow_Unknown(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "event", "show", "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNoEventSelected(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "photos", "list")
	require.ErrorIs(t, err, errNoEvent)
}

func TestLoginLogout(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("wrong\n", "login", "-e", testEventID)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = h.run("", "guests", "-e", testEventID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	out := h.mustRun("letmein\n", "login", "-e", testEventID)
	assert.Contains(t, out, "Logged in as host of "+testEventID)

	// login made the event current
	h.mustRun("", "guests")

	out = h.mustRun("", "logout", "--all")
	assert.Contains(t, out, "Logged out of "+testEventID)

	_, err = h.run("", "guests")
	require.Error(t, err)
}

func TestRSVP_NewResponseThenView(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(newGuestInput, "rsvp", "-e", testEventID)
	assert.Contains(t, out, "Step 1 of 4: identity")
	assert.Contains(t, out, "Step 4 of 4: details")
	assert.Contains(t, out, "Thank you, Ann Lee!")
	assert.Equal(t, 1, h.backend.inserts)

	var saved string
	for k, g := range h.backend.guests {
		saved = k
		assert.Equal(t, "Tom", g.PlusOneName)
		assert.True(t, g.AttendingCeremony)
		assert.False(t, g.AttendingReception)
		assert.Equal(t, "See you!", g.Message)
	}
	require.NotEmpty(t, saved)

	// the stored token reopens the confirmed response without prompting
	out = h.mustRun("", "rsvp", "-e", testEventID)
	assert.Contains(t, out, "Your response is confirmed")
	assert.NotContains(t, out, "Step 1 of 4")
	assert.Equal(t, 1, h.backend.inserts)
	assert.Equal(t, 0, h.backend.updates)
}

func TestRSVP_EditUpdatesInPlace(t *testing.T) {
	h := newHarness(t)
	h.mustRun(newGuestInput, "rsvp", "-e", testEventID)

	keep := strings.Repeat("\n", 3+2+3+2)
	out := h.mustRun(keep+"Changed\n\n", "rsvp", "-e", testEventID, "--edit")
	assert.Contains(t, out, "Editing your response")
	assert.Contains(t, out, "[Ann Lee]")

	assert.Equal(t, 1, h.backend.inserts)
	assert.Equal(t, 1, h.backend.updates)
	require.Len(t, h.backend.guests, 1)
	for _, g := range h.backend.guests {
		assert.Equal(t, "Changed", g.Message)
		assert.Equal(t, "Ann Lee", g.Name)
		assert.Equal(t, "vegan", g.DietaryRestrictions)
	}
}

func TestRSVP_InvalidFieldRepromptsStep(t *testing.T) {
	h := newHarness(t)

	input := "Ann Lee\nnot-an-email\n\n" + "\nann@example.com\n\n" + strings.TrimPrefix(newGuestInput, "Ann Lee\nann@example.com\n\n")
	out := h.mustRun(input, "rsvp", "-e", testEventID)
	assert.Contains(t, out, "! Enter a valid email address")
	assert.Equal(t, 2, strings.Count(out, "Step 1 of 4"))
	assert.Equal(t, 1, h.backend.inserts)
}

func TestRSVP_BackAndQuit(t *testing.T) {
	h := newHarness(t)

	input := strings.TrimSuffix(newGuestInput, "\n") + "b\n" + // back from the final step
		"\n\n\n" + // plus-one again, keeping values
		"\n\n\n" + // details again
		"q\n"
	_, err := h.run(input, "rsvp", "-e", testEventID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing was saved")
	assert.Equal(t, 0, h.backend.inserts)
}

func TestRSVP_SubmitFailureCanBeRetried(t *testing.T) {
	h := newHarness(t)
	h.mustRun(newGuestInput, "rsvp", "-e", testEventID)

	h.backend.updateErr = client.ErrUnavailable
	keep := strings.Repeat("\n", 3+2+3+3)
	out := h.mustRun(keep+"\n"+"\n", "rsvp", "-e", testEventID, "--edit")
	assert.Contains(t, out, "could not save your response")
	assert.Contains(t, out, "Try again?")
	assert.Equal(t, 1, h.backend.updates)
}

func TestRSVP_ExplicitToken(t *testing.T) {
	h := newHarness(t)
	h.mustRun(newGuestInput, "rsvp", "-e", testEventID)

	var token string
	for _, g := range h.backend.guests {
		token = g.ConfirmationToken
	}

	other := newHarness(t)
	other.backend = h.backend
	out := other.mustRun("", "rsvp", "-e", testEventID, "--token", token)
	assert.Contains(t, out, "Token:     "+token)
}

func loggedIn(t *testing.T) *harness {
	h := newHarness(t)
	h.backend.photos = samplePhotos()
	h.mustRun("letmein\n", "login", "-e", testEventID)
	return h
}

func TestPhotosList(t *testing.T) {
	h := newHarness(t)
	h.backend.photos = samplePhotos()

	out := h.mustRun("", "photos", "list", "-e", testEventID, "--refresh")
	assert.Contains(t, out, "first-dance.jpg")
	assert.Contains(t, out, "local (temporary)")
}

func TestPhotosUpload(t *testing.T) {
	h := loggedIn(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "party.png")
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(good, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o600))

	out := h.mustRun("", "photos", "upload", good, "--caption", "Hi")
	assert.Contains(t, out, "Uploaded party.png as p-new")
	last := h.backend.photos[len(h.backend.photos)-1]
	assert.Equal(t, "Hi", last.Caption)
	assert.Equal(t, "image/png", last.MimeType)

	_, err := h.run("", "photos", "upload", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 photos")

	_, err = h.run("", "photos", "upload", filepath.Join(dir, "missing.png"))
	require.Error(t, err)
}

func TestPhotosUpload_RejectedImage(t *testing.T) {
	h := loggedIn(t)
	h.backend.uploadErr = &client.InvalidArgumentError{Message: "file is not a readable image"}
	path := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o600))

	_, err := h.run("", "photos", "upload", path)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestPhotosHostCommands(t *testing.T) {
	h := loggedIn(t)

	out := h.mustRun("", "photos", "caption", "a1", "Best", "day", "ever")
	assert.Contains(t, out, "Caption updated")
	assert.Equal(t, "Best day ever", h.backend.lastCaption)

	_, err := h.run("", "photos", "caption", "zz", "x")
	require.ErrorIs(t, err, common.ErrorNotFound)

	out = h.mustRun("", "photos", "reorder", "b2", "a1")
	assert.Contains(t, out, "cake.png")
	assert.Equal(t, []string{"b2", "a1"}, h.backend.lastReorder)

	out = h.mustRun("", "photos", "delete", "a1")
	assert.Contains(t, out, "Deleted a1")
	_, err = h.run("", "photos", "delete", "a1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPhotosHostCommands_ExpiredSession(t *testing.T) {
	h := loggedIn(t)

	a := newApp(h.cfg)
	a.dial = func(string) (client.Client, error) { return h.backend, nil }
	s, err := a.sessionStore(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.SetHostToken(context.Background(), testEventID, "stale"))
	require.NoError(t, a.Close())

	_, err = h.run("", "photos", "delete", "a1")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Contains(t, err.Error(), "eventkeeper login")
}

func TestPhotosGet(t *testing.T) {
	old := download
	defer func() { download = old }()

	var gotURL string
	download = func(_ context.Context, url string) ([]byte, error) {
		gotURL = url
		return []byte("jpeg bytes"), nil
	}

	h := newHarness(t)
	h.backend.photos = samplePhotos()
	h.backend.photos[0].URL = "http://blobs/a1.jpg"
	dir := t.TempDir()

	out := h.mustRun("", "photos", "get", "a1", "-e", testEventID, "-o", dir)
	assert.Equal(t, "http://blobs/a1.jpg", gotURL)
	assert.Contains(t, out, "Saved "+filepath.Join(dir, "first-dance.jpg"))

	b, err := os.ReadFile(filepath.Join(dir, "first-dance.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(b))

	_, err = h.run("", "photos", "get", "zz", "-e", testEventID, "-o", dir)
	require.ErrorIs(t, err, common.ErrorNotFound)

	download = func(context.Context, string) ([]byte, error) { return nil, errors.New("404") }
	_, err = h.run("", "photos", "get", "a1", "-e", testEventID, "-o", dir)
	require.Error(t, err)
}
