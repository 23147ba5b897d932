package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/artverse/internal/client"
	"github.com/erazemk/artverse/internal/model"
)

var errNotSignedIn = errors.New("not signed in: run artverse login")

func (a *App) printUser(prefix string, u *model.User) {
	fmt.Fprintf(a.out, "%s %s <%s>\n", prefix, u.Name, u.Email)
}

func newLoginCmd(g *globals) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the gallery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				addr, err := app.valueOrPrompt(email, "Email")
				if err != nil {
					return err
				}
				password, err := app.promptSecret("Password")
				if err != nil {
					return err
				}

				u, err := app.client.Login(ctx, addr, password)
				if err != nil {
					return err
				}
				app.printUser("✓ Signed in as", u)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")

	return cmd
}

func newSignupCmd(g *globals) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a gallery account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				displayName, err := app.valueOrPrompt(name, "Name")
				if err != nil {
					return err
				}
				addr, err := app.valueOrPrompt(email, "Email")
				if err != nil {
					return err
				}
				password, err := app.promptSecret("Password")
				if err != nil {
					return err
				}

				u, err := app.client.Signup(ctx, displayName, addr, password)
				if err != nil {
					return err
				}
				app.printUser("✓ Account created for", u)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")

	return cmd
}

func newLogoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				if err := app.client.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(app.out, "✓ Signed out")
				return nil
			})
		},
	}
}

func newMeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				u, err := app.client.Me(ctx)
				if errors.Is(err, client.ErrUnauthorized) {
					return errNotSignedIn
				}
				if err != nil {
					return err
				}
				app.printUser("Signed in as", u)
				return nil
			})
		},
	}
}

func newHealthCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the gallery server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				h, err := app.client.Health(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(app.out, "Server: %s\nStatus: %s\n", app.client.BaseURL(), h.Status)
				if h.Timestamp != "" {
					fmt.Fprintf(app.out, "Time:   %s\n", h.Timestamp)
				}
				return nil
			})
		},
	}
}
