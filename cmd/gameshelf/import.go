package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calric/gameshelf/internal/covers"
)

var (
	importPick   int
	importStatus string
	importCover  bool
)

var importCmd = &cobra.Command{
	Use:   "import <title>",
	Short: "Search MobyGames and add a result to the collection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMobyService()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		games, err := svc.SearchByTitle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(games) == 0 {
			return fmt.Errorf("no results for %q", query)
		}
		if importPick < 1 || importPick > len(games) {
			return fmt.Errorf("--pick %d out of range, search returned %d results", importPick, len(games))
		}

		g := games[importPick-1]
		if importStatus != "" {
			g.Status = importStatus
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Add(&g); err != nil {
			return err
		}
		fmt.Printf("Added #%d: %s (%s)\n", g.ID, g.Title, g.Platform)

		if importCover {
			path, err := newDownloader().Download(g.ID, g.Title, g.CoverURL, false)
			switch {
			case err == covers.ErrNoCover:
				fmt.Println("No cover image available.")
			case err != nil:
				// Cover failure is not worth failing the import over.
				logger.Warn("cover download failed", zap.Int64("id", g.ID), zap.Error(err))
			default:
				if err := st.SetCoverPath(g.ID, path); err != nil {
					return err
				}
				fmt.Printf("Cover saved to %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	importCmd.Flags().IntVar(&importPick, "pick", 1, "which search result to import (1-based)")
	importCmd.Flags().StringVar(&importStatus, "status", "", "initial completion status")
	importCmd.Flags().BoolVar(&importCover, "cover", false, "download the cover image")
	rootCmd.AddCommand(importCmd)
}
