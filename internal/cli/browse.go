package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/erazemk/artverse/internal/buyer"
	"github.com/erazemk/artverse/internal/catalog"
	"github.com/erazemk/artverse/internal/notify"
	"github.com/erazemk/artverse/internal/store"
)

// newBuyer returns a buyer session backed by the server and the catalog
// snapshot cache.
func (a *App) newBuyer() *buyer.Session {
	return buyer.New(buyer.Options{
		Catalog:      a.client,
		Snapshots:    store.NewSnapshotCache(a.db, store.ScopeCatalog),
		Engine:       catalog.NewEngine(a.cfg.Language()),
		Status:       a.status,
		Confirmation: notify.NewConfirmation(a.clock, a.cfg.ConfirmTTL),
		PageSize:     a.cfg.PageSize,
		Logger:       a.log,
		ImageURL:     a.client.ImageURL,
	})
}

// query is the catalog query given on the command line.
type query struct {
	search string
	typ    string
	price  string
	sort   string
	page   int
}

func (q *query) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&q.search, "search", "s", "", "match artwork name or artist")
	f.StringVarP(&q.typ, "type", "t", "", "artwork type (all for every type)")
	f.StringVarP(&q.price, "price", "p", "", "price range: low, medium or high")
	f.StringVar(&q.sort, "sort", "", "order: name, artist, price-low or price-high")
	f.IntVar(&q.page, "page", 1, "page number")
}

// apply sets the query on s. The page goes last because every other
// setter resets it.
func (q *query) apply(s *buyer.Session) error {
	if q.search != "" {
		s.Search(q.search)
	}
	if q.typ != "" {
		s.FilterType(q.typ)
	}
	if q.price != "" {
		if err := s.FilterPrice(q.price); err != nil {
			return err
		}
	}
	if q.sort != "" {
		if err := s.SortBy(q.sort); err != nil {
			return err
		}
	}
	if q.page > 1 {
		s.GoToPage(q.page)
	}
	return nil
}

func newBrowseCmd(g *globals) *cobra.Command {
	var q query

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Show a page of the gallery catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				s := app.newBuyer()
				loadErr := s.Load(ctx)
				if err := q.apply(s); err != nil {
					return err
				}

				v := s.View()
				if err := app.views.Catalog(app.out, v); err != nil {
					return err
				}
				// A saved catalog was shown in place of the live one.
				if loadErr != nil && !v.Offline {
					return app.userError(loadErr, buyer.MsgLoadFailed)
				}
				return nil
			})
		},
	}
	q.register(cmd)

	return cmd
}

func newDetailCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <artwork-id>",
		Short: "Show an artwork with its recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				d, err := app.newBuyer().Detail(ctx, args[0])
				if err != nil {
					return app.userError(err, msgArtworkLoadFailed)
				}
				return app.views.Artwork(app.out, d)
			})
		},
	}
}
