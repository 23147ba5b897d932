package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/artverse/internal/buyer"
	"github.com/erazemk/artverse/internal/client"
	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/imaging"
	"github.com/erazemk/artverse/internal/inventory"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/store"
	"github.com/erazemk/artverse/internal/view"
)

func (a *App) newInventory() *inventory.Service {
	return inventory.NewService(a.client, a.status, imaging.Prepare, a.log)
}

// loadArtwork loads the seller's inventory and picks the artwork rawID.
func loadArtwork(ctx context.Context, svc *inventory.Service, rawID string) (model.Artwork, error) {
	id, err := buyer.ParseArtworkID(rawID)
	if err != nil {
		return model.Artwork{}, err
	}
	if _, err := svc.Load(ctx); err != nil {
		return model.Artwork{}, err
	}
	a, ok := svc.Find(id)
	if !ok {
		return model.Artwork{}, common.NotFound("Artwork not found")
	}
	return a, nil
}

// fields are the artwork form flags shared by edit and upload.
type fields struct {
	name        string
	description string
	price       string
	artworkType string
	artist      string
	year        int
	dimensions  string
	medium      string
	style       string
}

func (f *fields) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "artwork name")
	fl.StringVar(&f.description, "description", "", "description")
	fl.StringVar(&f.price, "price", "", `price in dollars ("" for price on request)`)
	fl.StringVar(&f.artworkType, "type", "", "artwork type: "+strings.Join(model.ArtworkTypes, ", "))
	fl.StringVar(&f.artist, "artist", "", "artist name")
	fl.IntVar(&f.year, "year", 0, "year created (0 to clear)")
	fl.StringVar(&f.dimensions, "dimensions", "", "dimensions, e.g. 24x36 in")
	fl.StringVar(&f.medium, "medium", "", "medium: "+strings.Join(model.Mediums, ", "))
	fl.StringVar(&f.style, "style", "", "style: "+strings.Join(model.Styles, ", "))
}

// apply copies the flags that were given onto form.
func (f *fields) apply(cmd *cobra.Command, form *model.ArtworkUpdate) error {
	changed := cmd.Flags().Changed

	if changed("name") {
		form.Name = f.name
	}
	if changed("description") {
		form.Description = f.description
	}
	if changed("price") {
		price, err := parsePrice(f.price)
		if err != nil {
			return err
		}
		form.Price = price
	}
	if changed("type") {
		if err := checkOption("artwork type", f.artworkType, model.ArtworkTypes); err != nil {
			return err
		}
		form.ArtworkType = f.artworkType
	}
	if changed("artist") {
		form.Artist = f.artist
	}
	if changed("year") {
		if f.year == 0 {
			form.YearCreated = nil
		} else {
			year := f.year
			form.YearCreated = &year
		}
	}
	if changed("dimensions") {
		form.Dimensions = f.dimensions
	}
	if changed("medium") {
		if err := checkOption("medium", f.medium, model.Mediums); err != nil {
			return err
		}
		form.Medium = f.medium
	}
	if changed("style") {
		if err := checkOption("style", f.style, model.Styles); err != nil {
			return err
		}
		form.Style = f.style
	}
	return nil
}

func parsePrice(s string) (*float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return nil, nil
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, common.Validation("Price must be a number")
	}
	return &p, nil
}

func checkOption(field, value string, options []string) error {
	if value == "" || slices.Contains(options, value) {
		return nil
	}
	return common.Validation(fmt.Sprintf("Unknown %s %q (choose from: %s)", field, value, strings.Join(options, ", ")))
}

func newSellerCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seller",
		Short: "Manage your listed artworks",
	}
	cmd.AddCommand(
		newSellerListCmd(g),
		newSellerEditCmd(g),
		newSellerDeleteCmd(g),
		newSellerUploadCmd(g),
	)
	return cmd
}

func newSellerListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your artworks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				cache := store.NewSnapshotCache(app.db, store.ScopeSeller)

				artworks, err := app.newInventory().Load(ctx)
				d := view.SellerData{Artworks: artworks}
				switch {
				case err == nil:
					if serr := cache.Save(ctx, artworks); serr != nil {
						app.log.Warn("failed to save seller snapshot", "error", serr)
					}
				case errors.Is(err, client.ErrUnauthorized):
					return err
				default:
					snap, serr := cache.Load(ctx)
					if serr != nil || snap == nil {
						return err
					}
					d = view.SellerData{Artworks: snap.Artworks, Offline: true, FetchedAt: snap.FetchedAt}
				}

				if n, ok := app.status.Current(); ok {
					return app.views.Seller(app.out, &n, d)
				}
				return app.views.Seller(app.out, nil, d)
			})
		},
	}
}

func newSellerEditCmd(g *globals) *cobra.Command {
	var f fields

	cmd := &cobra.Command{
		Use:   "edit <artwork-id>",
		Short: "Change an artwork's details",
		Long:  "Changes only the fields given as flags. Sold artworks cannot be edited.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				svc := app.newInventory()
				a, err := loadArtwork(ctx, svc, args[0])
				if err != nil {
					return err
				}

				form, err := svc.OpenEdit(a)
				if err != nil {
					return err
				}
				if err := f.apply(cmd, &form); err != nil {
					return err
				}
				if _, err := svc.Update(ctx, a, form); err != nil {
					return err
				}
				app.printStatus()
				return nil
			})
		},
	}
	f.register(cmd)

	return cmd
}

func newSellerDeleteCmd(g *globals) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <artwork-id>",
		Short: "Remove an artwork",
		Long:  "Removes an artwork after confirmation. Sold artworks cannot be deleted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				svc := app.newInventory()
				a, err := loadArtwork(ctx, svc, args[0])
				if err != nil {
					return err
				}

				// Sold artworks are refused before asking.
				if inventory.CanMutate(a).Allowed && !yes {
					ok, err := app.confirm(fmt.Sprintf("Are you sure you want to delete %q? This cannot be undone.", a.Name))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(app.out, "Cancelled")
						return nil
					}
				}

				if err := svc.Delete(ctx, a); err != nil {
					return err
				}
				app.assets().forget(ctx, a.ID)
				app.printStatus()
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func newSellerUploadCmd(g *globals) *cobra.Command {
	var (
		f     fields
		image string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "List a new artwork and generate its 3D model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				upload := model.ArtworkUpload{}
				if err := f.apply(cmd, &upload.ArtworkUpdate); err != nil {
					return err
				}
				if image != "" {
					data, err := os.ReadFile(image)
					if err != nil {
						return fmt.Errorf("reading image: %w", err)
					}
					upload.Image = data
					upload.Filename = filepath.Base(image)
				}

				id, err := app.newInventory().Create(ctx, upload)
				if err != nil {
					return err
				}
				app.printStatus()
				fmt.Fprintf(app.out, "Artwork ID: %d\n", id)
				return nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&image, "image", "i", "", "image file (JPG, PNG or WebP)")

	return cmd
}
