package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/artverse/internal/buyer"
	"github.com/erazemk/artverse/internal/cart"
	"github.com/erazemk/artverse/internal/common"
	"github.com/erazemk/artverse/internal/view"
)

const shellHelp = `Catalog:  list, search <text>, type <type|all>, price <low|medium|high|none>,
          sort <name|artist|price-low|price-high>, page <n>, next, prev, reload
Artwork:  show <id>, ar <id>
Cart:     add <id>, qty <id> <n>, remove <id>, clear, cart, checkout
Other:    help, exit`

// Shell fallbacks for failures that carry no user-facing message.
const (
	msgCommandFailed     = "Command failed"
	msgArtworkLoadFailed = "Failed to load artwork"
	msgCartFailed        = "Failed to update cart"
)

// shell is the interactive buyer session.
type shell struct {
	buyer  *buyer.Session
	views  *view.Templates
	out    io.Writer
	log    *slog.Logger
	openAR func(ctx context.Context, rawID string) error
}

// run reads commands until end of input, "exit" or cancellation. Errors
// of single commands are printed and the loop goes on.
func (sh *shell) run(ctx context.Context, scanner *bufio.Scanner) {
	for {
		fmt.Fprintf(sh.out, "artverse [%d in cart]> ", sh.buyer.Cart().TotalItems())
		if !scanner.Scan() || ctx.Err() != nil {
			fmt.Fprintln(sh.out)
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		fallback := msgCommandFailed
		switch cmd {
		case "help", "?":
			fmt.Fprintln(sh.out, shellHelp)

		case "l", "ls", "list":
			err = sh.list()

		case "reload":
			// The status line carries the failure; a saved catalog may
			// still be listed.
			_ = sh.buyer.Load(ctx)
			err = sh.list()

		case "search":
			sh.buyer.Search(strings.Join(args, " "))
			err = sh.list()

		case "type":
			sh.buyer.FilterType(strings.Join(args, " "))
			err = sh.list()

		case "price":
			if err = sh.buyer.FilterPrice(firstArg(args)); err == nil {
				err = sh.list()
			}

		case "sort":
			if err = sh.buyer.SortBy(firstArg(args)); err == nil {
				err = sh.list()
			}

		case "page":
			var n int
			if n, err = strconv.Atoi(firstArg(args)); err != nil {
				err = common.Validation("Invalid page number")
				break
			}
			sh.buyer.GoToPage(n)
			err = sh.list()

		case "n", "next":
			sh.buyer.NextPage()
			err = sh.list()

		case "p", "prev":
			sh.buyer.PrevPage()
			err = sh.list()

		case "show":
			fallback = msgArtworkLoadFailed
			var d *buyer.Detail
			if d, err = sh.buyer.Detail(ctx, firstArg(args)); err == nil {
				err = sh.views.Artwork(sh.out, d)
			}

		case "ar":
			// The AR view reports its own failures.
			_ = sh.openAR(ctx, firstArg(args))

		case "add":
			fallback = msgCartFailed
			err = sh.add(firstArg(args))

		case "qty":
			err = sh.quantity(args)

		case "rm", "remove":
			var id int64
			if id, err = buyer.ParseArtworkID(firstArg(args)); err == nil {
				sh.buyer.RemoveFromCart(id)
				err = sh.cart()
			}

		case "clear":
			sh.buyer.ClearCart()
			err = sh.cart()

		case "cart":
			err = sh.cart()

		case "checkout":
			if cerr := sh.buyer.Checkout(); cerr != nil && !errors.Is(cerr, cart.ErrCheckoutUnavailable) {
				err = cerr
			}
			if n, ok := sh.buyer.Status(); ok {
				fmt.Fprintln(sh.out, view.StatusLine(n))
			}

		case "exit", "quit", "q":
			fmt.Fprintln(sh.out, "Bye!")
			return

		default:
			fmt.Fprintln(sh.out, "Unknown command:", cmd)
		}

		if err != nil {
			sh.log.Debug("shell command failed", "command", cmd, "error", err)
			fmt.Fprintln(sh.out, "✖", common.Message(err, fallback))
		}
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (sh *shell) list() error {
	return sh.views.Catalog(sh.out, sh.buyer.View())
}

func (sh *shell) cart() error {
	return sh.views.Cart(sh.out, sh.buyer.View())
}

func (sh *shell) add(raw string) error {
	id, err := buyer.ParseArtworkID(raw)
	if err != nil {
		return err
	}
	if err := sh.buyer.AddToCart(id); err != nil {
		return err
	}
	if l, ok := sh.buyer.Cart().Line(id); ok {
		fmt.Fprintf(sh.out, "✓ %q has been added to your cart!\n", l.Name)
	}
	return nil
}

func (sh *shell) quantity(args []string) error {
	if len(args) != 2 {
		return common.Validation("Usage: qty <id> <quantity>")
	}
	id, err := buyer.ParseArtworkID(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return common.Validation("Invalid quantity")
	}
	sh.buyer.SetQuantity(id, n)
	return sh.cart()
}

func newShopCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and fill a cart interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(ctx context.Context, app *App) error {
				s := app.newBuyer()
				// The status line carries the failure.
				_ = s.Load(ctx)

				sh := &shell{
					buyer: s,
					views: app.views,
					out:   app.out,
					log:   app.log,
					openAR: func(ctx context.Context, rawID string) error {
						return app.runAR(ctx, rawID, arOptions{userAgent: app.cfg.UserAgent})
					},
				}
				if err := sh.list(); err != nil {
					return err
				}
				fmt.Fprintln(app.out, `Type "help" for commands.`)
				sh.run(ctx, bufio.NewScanner(app.reader))
				return nil
			})
		},
	}
}
