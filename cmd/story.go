package cmd

import (
	"context"
	"fmt"

	"github.com/alexgenc/hack-or-snooze/internal/api"
	"github.com/spf13/cobra"
)

var flagAuthor string

func init() {
	submitCmd.Flags().StringVar(&flagAuthor, "author", "", "author credit (defaults to your account name)")
}

var submitCmd = &cobra.Command{
	Use:   "submit <title> <url>",
	Short: "Post a story without opening the TUI",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openEnv()
		if err != nil {
			return err
		}
		defer store.Close()

		saved, err := store.Load()
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}
		if saved.IsZero() {
			return fmt.Errorf("not logged in; run `snooze login <username>` first")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		client := api.New(cfg.APIURL)
		user, err := client.LoggedInUser(ctx, saved.Token, saved.Username)
		if err != nil {
			return fmt.Errorf("fetching account: %w", err)
		}

		author := flagAuthor
		if author == "" {
			author = user.Name
		}

		story, err := client.AddStory(ctx, nil, user, api.StoryDraft{
			Title:  args[0],
			URL:    args[1],
			Author: author,
		})
		if err != nil {
			return fmt.Errorf("submitting story: %w", err)
		}

		fmt.Printf("Posted %q (%s)\n", story.Title, story.StoryID)
		return nil
	},
}

var flagListCount int

func init() {
	listCmd.Flags().IntVarP(&flagListCount, "count", "n", 25, "number of stories to print")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the latest stories to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openEnv()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		feed, err := api.New(cfg.APIURL).FetchStories(ctx)
		if err != nil {
			return fmt.Errorf("fetching stories: %w", err)
		}

		stories := feed.Stories
		if flagListCount > 0 && len(stories) > flagListCount {
			stories = stories[:flagListCount]
		}

		for i, s := range stories {
			fmt.Println(formatStory(i+1, s))
		}
		return nil
	},
}

func formatStory(rank int, s api.Story) string {
	return fmt.Sprintf("%3d. %s (%s)\n     by %s · posted by %s", rank, s.Title, s.Hostname(), s.Author, s.Username)
}
