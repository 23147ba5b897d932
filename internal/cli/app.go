package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/artverse/internal/client"
	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/config"
	"github.com/erazemk/artverse/internal/db"
	"github.com/erazemk/artverse/internal/notify"
	"github.com/erazemk/artverse/internal/store"
	"github.com/erazemk/artverse/internal/view"
)

// assetMaxAge is how long a downloaded 3D model stays in the cache.
const assetMaxAge = 7 * 24 * time.Hour

// App is the wiring shared by all commands: the server client, the local
// cache and the views.
type App struct {
	cfg    *config.Config
	client *client.Client
	db     *sql.DB
	status *notify.Status
	clock  notify.Clock
	views  *view.Templates
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	log    *slog.Logger
}

// newApp opens the cache, restores the saved session and loads the views.
func newApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := slog.Default()

	database, err := db.Open(cfg.CachePath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	c, err := client.New(client.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.RequestTimeout,
		UserAgent: cfg.UserAgent,
		Logger:    log,
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	cookies, err := store.LoadSession(ctx, database, c.BaseURL())
	if err != nil {
		log.Warn("failed to restore session", "error", err)
	} else if len(cookies) > 0 {
		c.SetCookies(cookies)
	}

	if n, err := store.PruneAssets(ctx, database, time.Now().Add(-assetMaxAge)); err != nil {
		log.Warn("failed to prune asset cache", "error", err)
	} else if n > 0 {
		log.Debug("pruned asset cache", "removed", n)
	}

	views, err := view.Load()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("loading views: %w", err)
	}

	return &App{
		cfg:    cfg,
		client: c,
		db:     database,
		status: notify.NewStatus(notify.SystemClock, cfg.StatusTTL),
		clock:  notify.SystemClock,
		views:  views,
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
		log:    log,
	}, nil
}

// Close saves the session cookies and closes the cache.
func (a *App) Close(ctx context.Context) {
	if err := store.SaveSession(ctx, a.db, a.client.BaseURL(), a.client.Cookies()); err != nil {
		a.log.Warn("failed to save session", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn("failed to close cache", "error", err)
	}
}

// withApp runs fn with an App built from the resolved settings.
func (g *globals) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer g.finish()

	app, err := newApp(ctx, g.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer app.Close(context.WithoutCancel(ctx))
	return app.userError(fn(ctx, app), msgRequestFailed)
}

const msgRequestFailed = "Request to the gallery failed"

// userError keeps the short message of a classified error. A classified
// error without one carries protocol detail in its chain, so it is logged
// and reported as fallback instead. Local errors pass through.
func (a *App) userError(err error, fallback string) error {
	var ce *common.Error
	if err == nil || !errors.As(err, &ce) || ce.Msg != "" {
		return err
	}
	a.log.Debug(fallback, "error", err)
	return &common.Error{Kind: ce.Kind, Msg: fallback, Err: err}
}

// printStatus writes the current status line, if any.
func (a *App) printStatus() {
	n, ok := a.status.Current()
	if !ok {
		return
	}
	fmt.Fprintln(a.out, view.StatusLine(n))
}
