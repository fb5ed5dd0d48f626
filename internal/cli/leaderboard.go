package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var (
		size       int
		difficulty string
		sortBy     string
		page       int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard <game>",
		Short: "Show standings for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game := args[0]

			query := url.Values{}
			if cmd.Flags().Changed("size") {
				query.Set("size", fmt.Sprintf("%d", size))
			}
			if difficulty != "" {
				query.Set("difficulty", difficulty)
			}
			if sortBy != "" {
				query.Set("sort", sortBy)
			}
			if page > 0 {
				query.Set("page", fmt.Sprintf("%d", page))
			}

			path := fmt.Sprintf("/api/leaderboard/%s", game)
			if encoded := query.Encode(); encoded != "" {
				path += "?" + encoded
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 3, "Puzzle board size (slidingpuzzle only)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Puzzle difficulty filter (slidingpuzzle only)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Puzzle sort: score or time (slidingpuzzle only)")
	cmd.Flags().IntVar(&page, "page", 0, "Result page")

	return cmd
}
