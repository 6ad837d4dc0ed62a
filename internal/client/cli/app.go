package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/eventkeeper/internal/client/client"
	"github.com/dmitrijs2005/eventkeeper/internal/client/config"
	"github.com/dmitrijs2005/eventkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/eventkeeper/internal/client/services"
)

var errNoEvent = errors.New("no event selected: pass --event or run `eventkeeper event use <id>`")

// App carries what the commands share. The backend connection and the local
// cache are opened on first use so that `--help` works offline.
type App struct {
	cfg *config.Config

	in     io.Reader
	reader *bufio.Reader
	out    io.Writer

	eventFlag string

	api     client.Client
	db      *sql.DB
	session *services.Session

	dial      func(addr string) (client.Client, error)
	openCache func(ctx context.Context, path string) (*sql.DB, error)
}

func newApp(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
		dial: func(addr string) (client.Client, error) {
			return client.NewEventKeeperClient(addr)
		},
		openCache: client.InitDatabase,
	}
}

func (a *App) setIO(in io.Reader, out io.Writer) {
	if a.in == nil {
		a.in = in
		a.reader = bufio.NewReader(in)
	}
	if a.out == nil {
		a.out = out
	}
}

func (a *App) client() (client.Client, error) {
	if a.api != nil {
		return a.api, nil
	}
	c, err := a.dial(a.cfg.ServerEndpointAddr)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", a.cfg.ServerEndpointAddr, err)
	}
	a.api = c
	return c, nil
}

func (a *App) sessionStore(ctx context.Context) (*services.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	db, err := a.openCache(ctx, a.cfg.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open local cache %s: %w", a.cfg.LocalDBPath, err)
	}
	a.db = db
	a.session = services.NewSession(metadata.NewSQLiteRepository(db))
	return a.session, nil
}

// Close releases the connection and the cache.
func (a *App) Close() error {
	var errs []error
	if a.api != nil {
		errs = append(errs, a.api.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.RequestTimeout)
}

// eventID resolves --event, falling back to the remembered current event.
func (a *App) eventID(ctx context.Context) (string, error) {
	s, err := a.sessionStore(ctx)
	if err != nil {
		return "", err
	}
	id, err := s.ResolveEvent(ctx, a.eventFlag)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errNoEvent
	}
	return id, nil
}

// hostClient returns the backend client authorised with the stored host
// token of eventID.
func (a *App) hostClient(ctx context.Context, eventID string) (client.Client, error) {
	s, err := a.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	token, err := s.HostToken(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("not logged in as host of %s: run `eventkeeper login`", eventID)
	}

	c, err := a.client()
	if err != nil {
		return nil, err
	}
	c.SetAccessToken(token)
	return c, nil
}

// hostError adds a hint when the stored host token was rejected.
func hostError(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return fmt.Errorf("%w (session expired? run `eventkeeper login`)", err)
	}
	return err
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
