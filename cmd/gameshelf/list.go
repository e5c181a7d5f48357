package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calric/gameshelf/internal/store"
)

var listOpts struct {
	query    string
	status   string
	platform string
	genre    string
	sortBy   string
	limit    int
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		games, total, err := st.List(store.ListOptions{
			Query:    listOpts.query,
			Status:   listOpts.status,
			Platform: listOpts.platform,
			Genre:    listOpts.genre,
			SortBy:   listOpts.sortBy,
			Limit:    listOpts.limit,
		})
		if err != nil {
			return err
		}
		if len(games) == 0 {
			fmt.Println("No games in the collection. Use 'gameshelf add' or 'gameshelf import'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPLATFORM\tSTATUS\tRELEASED\tGENRE")
		for _, g := range games {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				g.ID, g.Title, g.Platform, g.Status, g.ReleaseDateString(), g.Genre)
		}
		w.Flush()
		fmt.Printf("\nTotal: %d\n", total)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single game in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad id %q", args[0])
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		g, err := st.Get(id)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\t%d\n", g.ID)
		fmt.Fprintf(w, "Title\t%s\n", g.Title)
		fmt.Fprintf(w, "Platform\t%s\n", g.Platform)
		fmt.Fprintf(w, "Developer\t%s\n", g.Developer)
		fmt.Fprintf(w, "Publisher\t%s\n", g.Publisher)
		fmt.Fprintf(w, "Released\t%s\n", g.ReleaseDateString())
		fmt.Fprintf(w, "Genre\t%s\n", g.Genre)
		fmt.Fprintf(w, "Status\t%s\n", g.Status)
		if g.Notes != "" {
			fmt.Fprintf(w, "Notes\t%s\n", g.Notes)
		}
		if g.CoverPath != "" {
			fmt.Fprintf(w, "Cover\t%s\n", g.CoverPath)
		} else if g.CoverURL != "" {
			fmt.Fprintf(w, "Cover\t%s\n", g.CoverURL)
		}
		w.Flush()
		return nil
	},
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listOpts.query, "query", "q", "", "title substring filter")
	f.StringVar(&listOpts.status, "status", "", "filter by completion status")
	f.StringVar(&listOpts.platform, "platform", "", "filter by platform")
	f.StringVar(&listOpts.genre, "genre", "", "filter by genre")
	f.StringVar(&listOpts.sortBy, "sort", "title", "sort by title|release|platform|status|added")
	f.IntVar(&listOpts.limit, "limit", 0, "limit output (0 = all)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
