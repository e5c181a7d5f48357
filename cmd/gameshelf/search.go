package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// displayLimit caps how many search results are shown; the service itself
// does not truncate.
const displayLimit = 20

var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search the MobyGames database by title",
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
			fmt.Println("No results.")
			return nil
		}

		shown := games
		if len(shown) > displayLimit {
			shown = shown[:displayLimit]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTITLE\tPLATFORM\tRELEASED\tDEVELOPER\tGENRE")
		for i, g := range shown {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i+1, g.Title, g.Platform, g.ReleaseDateString(), g.Developer, g.Genre)
		}
		w.Flush()

		if len(games) > displayLimit {
			fmt.Printf("\nShowing %d of %d results.\n", displayLimit, len(games))
		}
		fmt.Println("\nUse 'gameshelf import <title> --pick N' to add a result to your collection.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
