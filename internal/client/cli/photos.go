package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/filex"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/netx"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
)

// download is a test seam for netx.Download.
var download = netx.Download

func NewPhotosCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Browse and manage the event photo gallery",
	}
	cmd.AddCommand(newPhotosListCommand(a))
	cmd.AddCommand(newPhotosUploadCommand(a))
	cmd.AddCommand(newPhotosDeleteCommand(a))
	cmd.AddCommand(newPhotosCaptionCommand(a))
	cmd.AddCommand(newPhotosReorderCommand(a))
	cmd.AddCommand(newPhotosGetCommand(a))
	return cmd
}

func newPhotosListCommand(a *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List photos in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			photos, err := c.ListPhotos(ctx, eventID, refresh)
			if err != nil {
				return fmt.Errorf("list photos: %w", err)
			}
			renderPhotos(a.out, photos)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the gallery from storage")
	return cmd
}

func readPhotoFile(path string) (api.PhotoFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.PhotoFile{}, err
	}
	return api.PhotoFile{
		Name:        filepath.Base(path),
		Data:        data,
		ContentType: mimetype.Detect(data).String(),
	}, nil
}

func newPhotosUploadCommand(a *App) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload one or more photos (host only)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}

			files := make([]api.PhotoFile, 0, len(args))
			for _, path := range args {
				f, err := readPhotoFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				f.Caption = caption
				files = append(files, f)
			}

			c, err := a.hostClient(cmd.Context(), eventID)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			if len(files) == 1 {
				p, err := c.UploadPhoto(ctx, eventID, files[0])
				if err != nil {
					return fmt.Errorf("upload %s: %w", files[0].Name, hostError(err))
				}
				renderPhoto(a.out, p)
				return nil
			}

			uploaded, err := c.UploadPhotos(ctx, eventID, files)
			if err != nil {
				return fmt.Errorf("upload: %w", hostError(err))
			}
			for _, p := range uploaded {
				renderPhoto(a.out, p)
			}
			if n := len(files) - len(uploaded); n > 0 {
				return fmt.Errorf("%d of %d photos could not be uploaded", n, len(files))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "caption for the uploaded photos")
	return cmd
}

func newPhotosDeleteCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <photo-id>",
		Short: "Delete a photo (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.hostClient(cmd.Context(), eventID)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			ok, err := c.DeletePhoto(ctx, eventID, args[0])
			if err != nil {
				return fmt.Errorf("delete photo: %w", hostError(err))
			}
			if !ok {
				return fmt.Errorf("photo %s could not be deleted: %w", args[0], common.ErrorNotFound)
			}
			a.printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newPhotosCaptionCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "caption <photo-id> [text...]",
		Short: "Set a photo caption; no text clears it (host only)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.hostClient(cmd.Context(), eventID)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			caption := strings.Join(args[1:], " ")
			ok, err := c.UpdateCaption(ctx, eventID, args[0], caption)
			if err != nil {
				return fmt.Errorf("update caption: %w", hostError(err))
			}
			if !ok {
				return fmt.Errorf("caption of %s was not updated: %w", args[0], common.ErrorNotFound)
			}
			a.printf("Caption updated\n")
			return nil
		},
	}
}

func newPhotosReorderCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <photo-id>...",
		Short: "Put the given photos first, in this order (host only)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.hostClient(cmd.Context(), eventID)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			photos, err := c.ReorderPhotos(ctx, eventID, args)
			if err != nil {
				return fmt.Errorf("reorder photos: %w", hostError(err))
			}
			renderPhotos(a.out, photos)
			return nil
		},
	}
}

func newPhotosGetCommand(a *App) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "get <photo-id>",
		Short: "Download a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			photos, err := c.ListPhotos(ctx, eventID, false)
			if err != nil {
				return fmt.Errorf("list photos: %w", err)
			}
			p := findPhoto(photos, args[0])
			if p == nil {
				return fmt.Errorf("photo %s: %w", args[0], common.ErrorNotFound)
			}

			data, err := download(ctx, p.URL)
			if err != nil {
				return fmt.Errorf("download %s: %w", p.URL, err)
			}

			dir, err := filex.EnsureDir(outDir)
			if err != nil {
				return err
			}
			path, err := filex.WriteNew(dir, filex.SafeName(p.Filename, p.ID), data)
			if err != nil {
				return err
			}
			a.printf("Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory to save into")
	return cmd
}

func findPhoto(photos []*models.Photo, id string) *models.Photo {
	for _, p := range photos {
		if p.ID == id {
			return p
		}
	}
	return nil
}
