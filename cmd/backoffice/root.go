package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/backoffice/internal/config"
	"github.com/JaimeStill/backoffice/internal/resources"
	"github.com/JaimeStill/backoffice/pkg/logging"
	"github.com/JaimeStill/backoffice/pkg/ui"
	"github.com/JaimeStill/backoffice/pkg/upstream"
)

// EnvToken supplies the bearer token when --token is not given.
const EnvToken = "BACKOFFICE_TOKEN"

type app struct {
	baseURL string
	token   string
	theme   string
	verbose bool

	resources resources.System
	client    *upstream.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Browse content API collections from the terminal",
		Long: ui.FormatTitle("backoffice") + " - content API admin client\n\n" +
			"Lists, searches and inspects the collections managed by the back office.\n" +
			"Settings come from config.toml when present, then the environment.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.init(cmd) },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.baseURL, "base-url", "", "content API root (overrides upstream.base_url)")
	flags.StringVar(&a.token, "token", "", "bearer token (default $"+EnvToken+")")
	flags.StringVar(&a.theme, "theme", "auto", "color theme: auto, light, dark")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log upstream requests")

	root.AddCommand(
		newResourcesCmd(a),
		newListCmd(a),
		newFindCmd(a),
		newCountCmd(a),
		newResumeCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	ui.SetTheme(a.theme)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.Upstream.BaseURL = a.baseURL
	}
	if a.token == "" {
		a.token = os.Getenv(EnvToken)
	}

	logger := slog.New(slog.DiscardHandler)
	if a.verbose {
		lc := cfg.Logging
		lc.Level = logging.LevelDebug
		logger = logging.NewWriter(cmd.ErrOrStderr(), &lc)
	}

	a.resources = resources.New(logger, cfg.API.Pagination)
	a.client = upstream.New(&cfg.Upstream, logger).With(a.token)
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &config.Config{}
		err = cfg.Finalize()
	}
	return cfg, err
}
