package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dustin/go-humanize"
)

const timeLayout = "2006-01-02 15:04"

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderEvent(w io.Writer, e *models.Event) {
	fmt.Fprintf(w, "Event:     %s\n", e.Name)
	fmt.Fprintf(w, "ID:        %s\n", e.ID)
	fmt.Fprintf(w, "Ceremony:  %s\n", yesNo(e.HasCeremony))
	fmt.Fprintf(w, "Reception: %s\n", yesNo(e.HasReception))
	if !e.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created:   %s\n", e.CreatedAt.UTC().Format(timeLayout))
	}
}

// renderPhotos prints the gallery in display order. Photos held only in
// server memory are flagged since they disappear on restart.
func renderPhotos(w io.Writer, photos []*models.Photo) {
	if len(photos) == 0 {
		fmt.Fprintln(w, "No photos yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tFILE\tSIZE\tDIMENSIONS\tSTORAGE\tCAPTION")
	for i, p := range photos {
		storage := string(p.Location)
		if p.IsLocal() {
			storage = string(models.StorageLocal) + " (temporary)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%dx%d\t%s\t%s\n",
			i+1, p.ID, p.Filename, humanize.Bytes(uint64(p.Size)), p.Width, p.Height, storage, dash(p.Caption))
	}
	tw.Flush()
}

func renderPhoto(w io.Writer, p *models.Photo) {
	fmt.Fprintf(w, "Uploaded %s as %s (%s)\n", p.Filename, p.ID, p.Location)
	if p.IsLocal() {
		fmt.Fprintln(w, "Note: photo storage is unavailable, this photo is kept temporarily and will be lost on server restart.")
	}
	fmt.Fprintf(w, "URL: %s\n", p.URL)
}

func attendance(g *models.Guest) string {
	var parts []string
	if g.AttendingCeremony {
		parts = append(parts, "ceremony")
	}
	if g.AttendingReception {
		parts = append(parts, "reception")
	}
	if len(parts) == 0 {
		return "not attending"
	}
	return strings.Join(parts, "+")
}

func renderGuests(w io.Writer, guests []*models.Guest) {
	if len(guests) == 0 {
		fmt.Fprintln(w, "No responses yet.")
		return
	}

	var ceremony, reception, total int
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tATTENDING\tPLUS-ONE\tDIETARY\tUPDATED")
	for _, g := range guests {
		heads := 1
		plusOne := "-"
		if g.PlusOne {
			heads = 2
			plusOne = g.PlusOneName
		}
		if g.AttendingCeremony {
			ceremony += heads
		}
		if g.AttendingReception {
			reception += heads
		}
		if g.AttendingCeremony || g.AttendingReception {
			total += heads
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.Name, g.Email, attendance(g), plusOne, dash(g.DietaryRestrictions), g.LastUpdated.UTC().Format(timeLayout))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d responses, %d attending (ceremony %d, reception %d)\n", len(guests), total, ceremony, reception)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// renderConfirmation is what the guest sees after submitting or when the
// response on file is already confirmed.
func renderConfirmation(w io.Writer, g *models.Guest) {
	fmt.Fprintf(w, "Thank you, %s! Your response is confirmed.\n", g.Name)
	fmt.Fprintf(w, "  Attending: %s\n", attendance(g))
	if g.PlusOne {
		fmt.Fprintf(w, "  Plus-one:  %s\n", g.PlusOneName)
	}
	if g.ConfirmedAt != nil {
		fmt.Fprintf(w, "  Confirmed: %s\n", g.ConfirmedAt.UTC().Format(timeLayout))
	}
	if !g.LastUpdated.IsZero() && (g.ConfirmedAt == nil || !g.LastUpdated.Equal(*g.ConfirmedAt)) {
		fmt.Fprintf(w, "  Updated:   %s\n", g.LastUpdated.UTC().Format(timeLayout))
	}
	fmt.Fprintf(w, "  Token:     %s\n", g.ConfirmationToken)
	fmt.Fprintln(w, "Keep the token to change your response later with `eventkeeper rsvp --edit`.")
}
