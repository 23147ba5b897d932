// Package cli is the artverse command line: the buyer gallery and shell,
// the AR preview, the seller dashboard and the account commands.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/erazemk/artverse/internal/config"
)

// globals are the persistent flags and the settings resolved from them.
type globals struct {
	configPath string
	baseURL    string
	cachePath  string
	pageSize   int
	locale     string
	logPath    string
	logLevel   string

	cfg      *config.Config
	closeLog func()
}

// NewRootCmd returns the artverse command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "artverse",
		Short: "Browse, buy and preview artworks in AR",
		Long: `ArtVerse is a client for the ArtVerse gallery.

Buyers browse the catalog, keep a cart and preview artworks in AR.
Sellers manage their listed artworks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return g.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			g.finish()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&g.configPath, "config", "c", "", "config file (default: $ARTVERSE_CONFIG or the user config dir)")
	f.StringVar(&g.baseURL, "base-url", "", "gallery server URL")
	f.StringVar(&g.cachePath, "cache", "", "local cache database path")
	f.IntVar(&g.pageSize, "page-size", 0, "artworks per catalog page")
	f.StringVar(&g.locale, "locale", "", "locale used to sort names")
	f.StringVarP(&g.logPath, "log", "l", "", "log file path")
	f.StringVar(&g.logLevel, "log-level", "", "console log level (debug, info, warn, error)")

	cmd.AddCommand(
		newBrowseCmd(g),
		newDetailCmd(g),
		newShopCmd(g),
		newARCmd(g),
		newSellerCmd(g),
		newLoginCmd(g),
		newSignupCmd(g),
		newLogoutCmd(g),
		newMeCmd(g),
		newHealthCmd(g),
	)

	return cmd
}

// setup resolves the configuration and installs the logger.
func (g *globals) setup(cmd *cobra.Command) error {
	path := g.configPath
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = g.baseURL
	}
	if flags.Changed("cache") {
		cfg.CachePath = g.cachePath
	}
	if flags.Changed("page-size") {
		cfg.PageSize = g.pageSize
	}
	if flags.Changed("locale") {
		cfg.Locale = g.locale
	}
	if flags.Changed("log") {
		cfg.LogPath = g.logPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogger(cmd.ErrOrStderr(), cfg.Level(), cfg.LogPath)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.closeLog = closeLog
	return nil
}

// finish closes the log file once. Cobra skips PersistentPostRun when a
// command fails, so withApp calls it as well.
func (g *globals) finish() {
	if g.closeLog != nil {
		g.closeLog()
		g.closeLog = nil
	}
}
