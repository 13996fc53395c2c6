package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/catalog"
	"github.com/bookfather/admin/internal/config"
	"github.com/bookfather/admin/internal/screen"
	"github.com/bookfather/admin/internal/validation"
)

// rootOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type rootOptions struct {
	configPath string
	baseURL    string
	apiKey     string
	keyHeader  string
	logLevel   string
	logFile    string

	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bookfather",
		Short: "Admin client for the BookFather catalog",
		Long: `BookFather admin manages the books, categories and banners of a
BookFather storefront through its HTTP API.

Run "bookfather tui" for the interactive admin, or use the resource
subcommands for scripting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.resolve(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.baseURL, "base-url", "", "Catalog API base URL (env BOOKFATHER_API_BASE_URL)")
	flags.StringVar(&opts.apiKey, "api-key", "", "Catalog API key (env BOOKFATHER_API_KEY)")
	flags.StringVar(&opts.keyHeader, "api-key-header", "", "Header carrying the API key (default \"apikey\")")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "File the interactive admin logs to")

	cmd.AddCommand(newTUICmd(opts))
	cmd.AddCommand(newBooksCmd(opts))
	cmd.AddCommand(newCategoriesCmd(opts))
	cmd.AddCommand(newBannersCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

// resolve loads the configuration, applies flag overrides and installs the
// default logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("api-key") {
		cfg.APIKey = o.apiKey
	}
	if flags.Changed("api-key-header") {
		cfg.KeyHeader = o.keyHeader
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)
	return nil
}

// api validates the configuration and builds the catalog client.
func (o *rootOptions) api() (*catalog.API, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	client := catalog.NewClient(o.cfg.BaseURL, o.cfg.APIKey,
		catalog.WithKeyHeader(o.cfg.KeyHeader),
		catalog.WithTimeout(o.cfg.Timeout),
		catalog.WithRateLimit(o.cfg.RateLimit),
		catalog.WithLogger(o.logger),
	)
	return catalog.NewAPI(client), nil
}

func (o *rootOptions) screenOptions(history *screen.History) screen.Options {
	return screen.Options{
		History:   history,
		Validator: validation.New(),
		Logger:    o.logger,
	}
}
