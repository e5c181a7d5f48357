package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var updateGame struct {
	title     string
	developer string
	publisher string
	release   string
	genre     string
	platform  string
	status    string
	notes     string
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a game",
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

		// Only flags that were actually set are applied.
		f := cmd.Flags()
		if f.Changed("title") {
			g.Title = updateGame.title
		}
		if f.Changed("developer") {
			g.Developer = updateGame.developer
		}
		if f.Changed("publisher") {
			g.Publisher = updateGame.publisher
		}
		if f.Changed("release") {
			release, err := parseDateFlag(updateGame.release)
			if err != nil {
				return err
			}
			g.ReleaseDate = release
		}
		if f.Changed("genre") {
			g.Genre = updateGame.genre
		}
		if f.Changed("platform") {
			g.Platform = updateGame.platform
		}
		if f.Changed("status") {
			g.Status = updateGame.status
		}
		if f.Changed("notes") {
			g.Notes = updateGame.notes
		}

		if err := st.Update(g); err != nil {
			return err
		}
		fmt.Printf("Updated #%d: %s\n", g.ID, g.Title)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a game from the collection",
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

		if err := st.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Removed #%d\n", id)
		return nil
	},
}

func init() {
	f := updateCmd.Flags()
	f.StringVar(&updateGame.title, "title", "", "game title")
	f.StringVar(&updateGame.developer, "developer", "", "developer")
	f.StringVar(&updateGame.publisher, "publisher", "", "publisher")
	f.StringVar(&updateGame.release, "release", "", "release date (YYYY-MM-DD or YYYY, empty to clear)")
	f.StringVar(&updateGame.genre, "genre", "", "genre")
	f.StringVar(&updateGame.platform, "platform", "", "platform")
	f.StringVar(&updateGame.status, "status", "", "completion status")
	f.StringVar(&updateGame.notes, "notes", "", "free-form notes")
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
}
