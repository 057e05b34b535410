package main

import (
	"fmt"
	"net/http"

	"github.com/gartstein/directory/internal/directory/config"
	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/source"
	"github.com/gartstein/directory/internal/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/directory.yaml"

// app carries what every subcommand shares once the root has set up.
type app struct {
	configPath string
	url        string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "directory",
		Short:         "Search, filter and page through a company directory",
		Long:          `Fetches the company list from an HTTP endpoint once and lets you filter, sort and page through it, either as a one-shot listing or in an interactive terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				logging.Sync(a.logger)
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "path to the YAML config file")
	root.PersistentFlags().StringVar(&a.url, "url", "", "companies endpoint (overrides source.url)")

	root.AddCommand(newListCmd(a), newBrowseCmd(a), newFacetsCmd(a))
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.url != "" {
		cfg.Source.URL = a.url
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
		}
	}
	a.cfg = cfg

	// The interactive UI owns the terminal, so it only logs when a file is set.
	if cmd.Name() == "browse" && cfg.Logging.File == "" {
		a.logger = zap.NewNop()
		return nil
	}

	opts := logging.Options{Env: cfg.Logging.Env, Level: cfg.Logging.Level}
	if cfg.Logging.File != "" {
		opts.Paths = []string{cfg.Logging.File}
	}
	a.logger, err = logging.New(opts)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	return nil
}

// source builds the configured data source.
func (a *app) source() source.Source {
	client := &http.Client{Timeout: a.cfg.Source.Timeout}
	fetcher := source.NewFetcher(a.cfg.Source.URL, client, a.logger)
	if a.cfg.Source.Retries == 0 {
		return fetcher
	}
	return source.NewRetrying(fetcher, a.cfg.Source.Retries, a.logger)
}
