package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calric/gameshelf/internal/model"
)

var addGame struct {
	title     string
	developer string
	publisher string
	release   string
	genre     string
	platform  string
	status    string
	notes     string
	coverURL  string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a game to the collection manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		release, err := parseDateFlag(addGame.release)
		if err != nil {
			return err
		}

		g := &model.Game{
			Title:       addGame.title,
			Developer:   addGame.developer,
			Publisher:   addGame.publisher,
			ReleaseDate: release,
			Genre:       addGame.genre,
			Platform:    addGame.platform,
			Status:      addGame.status,
			Notes:       addGame.notes,
			CoverURL:    addGame.coverURL,
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Add(g); err != nil {
			return err
		}
		fmt.Printf("Added #%d: %s\n", g.ID, g.Title)
		return nil
	},
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addGame.title, "title", "", "game title (required)")
	f.StringVar(&addGame.developer, "developer", "", "developer")
	f.StringVar(&addGame.publisher, "publisher", "", "publisher")
	f.StringVar(&addGame.release, "release", "", "release date (YYYY-MM-DD or YYYY)")
	f.StringVar(&addGame.genre, "genre", "", "genre")
	f.StringVar(&addGame.platform, "platform", "", "platform (comma-separate multiple)")
	f.StringVar(&addGame.status, "status", model.StatusNotStarted, "completion status")
	f.StringVar(&addGame.notes, "notes", "", "free-form notes")
	f.StringVar(&addGame.coverURL, "cover-url", "", "cover image URL")
	addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}
