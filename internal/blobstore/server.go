package blobstore

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// BlobServer exposes a MemoryStore over HTTP so that fallback photo URLs can
// be fetched while the process is alive.
type BlobServer struct {
	address string
	store   *MemoryStore
	logger  logging.Logger
	app     *fiber.App
}

func NewBlobServer(address string, store *MemoryStore, l logging.Logger) *BlobServer {
	s := &BlobServer{
		address: address,
		store:   store,
		logger:  l.With("module", "blob_server"),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/blobs/*", s.getBlob)
	s.app = app

	return s
}

func (s *BlobServer) getBlob(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	b, err := s.store.Get(key)
	if errors.Is(err, common.ErrorNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err != nil {
		s.logger.Error(c.UserContext(), "blob read failed", "key", key, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	if b.ContentType != "" {
		c.Set(fiber.HeaderContentType, b.ContentType)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(b.Data)
}

// App returns the underlying fiber application.
func (s *BlobServer) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled.
func (s *BlobServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping blob server...")
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error(ctx, "blob server shutdown", "err", err)
		}
	}()

	s.logger.Info(ctx, "Starting blob server", "address", s.address)
	return s.app.Listen(s.address)
}
