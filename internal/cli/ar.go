package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/artverse/internal/ar"
	"github.com/erazemk/artverse/internal/model"
	"github.com/erazemk/artverse/internal/view"
)

// terminalPlatform activates AR from a terminal: there is no camera to
// gate, so activation hands the model over as a file for a phone or a
// desktop viewer.
type terminalPlatform struct {
	out    io.Writer
	output string
}

func (p *terminalPlatform) CameraGated() bool { return false }

func (p *terminalPlatform) RequestCamera(context.Context) (ar.Stream, error) {
	return nil, errors.New("no camera on a terminal")
}

func (p *terminalPlatform) Activate(_ context.Context, a model.Artwork, assetURL string, asset []byte) error {
	if len(asset) == 0 {
		return errors.New("3D model is empty")
	}

	var (
		f   *os.File
		err error
	)
	if p.output != "" {
		f, err = os.Create(p.output)
	} else {
		f, err = os.CreateTemp("", fmt.Sprintf("artverse-%d-*.glb", a.ID))
	}
	if err != nil {
		return fmt.Errorf("saving 3D model: %w", err)
	}
	if _, err := f.Write(asset); err != nil {
		f.Close()
		return fmt.Errorf("saving 3D model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("saving 3D model: %w", err)
	}
	fmt.Fprintf(p.out, "3D model of %q saved to %s\n", a.Name, f.Name())
	fmt.Fprintf(p.out, "Source: %s\n", assetURL)
	return nil
}

type arOptions struct {
	userAgent string
	activate  bool
	output    string
}

// runAR opens an AR session, waits for its handshake and renders it.
// With activate set, a ready session is launched.
func (a *App) runAR(ctx context.Context, rawID string, opts arOptions) error {
	s := ar.Open(ctx, ar.Deps{
		Catalog:  a.client,
		Assets:   a.assets(),
		Platform: &terminalPlatform{out: a.out, output: opts.output},
		Status:   a.status,
		AssetURL: a.client.AssetURL,
		Logger:   a.log,
	}, rawID, opts.userAgent)
	defer s.Close()

	st, err := s.Wait(ctx)
	if err != nil {
		return err
	}

	d := view.ARData{State: st, Guidance: s.Guidance()}
	if st.Phase == ar.Ready && st.Device.Android {
		d.Intent = ar.SceneViewerIntent(st.AssetURL, st.Artwork.Name, a.client.BaseURL())
	}
	if err := a.renderAR(d); err != nil {
		return err
	}

	switch {
	case st.Phase == ar.Error:
		return errors.New(st.Err)
	case !opts.activate:
		return nil
	}

	err = s.Activate(ctx)
	a.printStatus()
	return err
}

func (a *App) renderAR(d view.ARData) error {
	if n, ok := a.status.Current(); ok {
		return a.views.AR(a.out, &n, d)
	}
	return a.views.AR(a.out, nil, d)
}

func newARCmd(g *globals) *cobra.Command {
	var opts arOptions

	cmd := &cobra.Command{
		Use:   "ar <artwork-id>",
		Short: "Prepare an artwork for viewing in AR",
		Long: `Loads an artwork and its 3D model for AR viewing.

The device is classified from --user-agent; pass a phone's user agent to
get its AR instructions and, for Android, the Scene Viewer link. With
--activate the model is saved to a file ready to open on a device.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				if !cmd.Flags().Changed("user-agent") {
					opts.userAgent = app.cfg.UserAgent
				}
				return app.runAR(ctx, args[0], opts)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.userAgent, "user-agent", "", "user agent of the viewing device")
	f.BoolVar(&opts.activate, "activate", false, "launch AR once the model is ready")
	f.StringVarP(&opts.output, "output", "o", "", "where --activate saves the model (default: a temp file)")

	return cmd
}
