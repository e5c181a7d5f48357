package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var coverForce bool

var coverCmd = &cobra.Command{
	Use:   "cover <id>",
	Short: "Download the cover image for a game",
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

		path, err := newDownloader().Download(g.ID, g.Title, g.CoverURL, coverForce)
		if err != nil {
			return err
		}
		if err := st.SetCoverPath(g.ID, path); err != nil {
			return err
		}
		fmt.Printf("Cover saved to %s\n", path)
		return nil
	},
}

func init() {
	coverCmd.Flags().BoolVar(&coverForce, "force", false, "refetch even if the cover exists locally")
	rootCmd.AddCommand(coverCmd)
}
