package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calric/gameshelf/internal/alert"
	"github.com/calric/gameshelf/internal/config"
	"github.com/calric/gameshelf/internal/covers"
	"github.com/calric/gameshelf/internal/moby"
	"github.com/calric/gameshelf/internal/store"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gameshelf",
	Short:         "Personal video-game collection manager",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if cfg.Debug {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.DBPath)
}

func newMobyService() (*moby.Service, error) {
	if cfg.MobyAPIKey == "" {
		return nil, fmt.Errorf("moby_api_key is not configured (set GAMESHELF_MOBY_API_KEY)")
	}
	client := moby.NewClient()
	if cfg.RetryAttempts > 0 {
		client.MaxAttempts = cfg.RetryAttempts
	}
	if cfg.RetryDelay > 0 {
		client.RetryDelay = cfg.RetryDelay
	}
	return moby.NewService(client, alert.NewLogNotifier(logger), logger, cfg.MobyAPIKey), nil
}

func newDownloader() *covers.Downloader {
	return covers.NewDownloader(cfg.CoversDir)
}

// parseDateFlag accepts a full date or a bare year, matching what the
// importer tolerates.
func parseDateFlag(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006", s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("release date %q: use YYYY-MM-DD or YYYY", s)
}
