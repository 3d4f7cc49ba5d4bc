package cmd

import (
	"fmt"

	"github.com/alexgenc/hack-or-snooze/internal/api"
	"github.com/alexgenc/hack-or-snooze/internal/config"
	"github.com/alexgenc/hack-or-snooze/internal/session"
	"github.com/alexgenc/hack-or-snooze/internal/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Jump straight into the story browser",
	Long:  "Open snooze in browse mode, skipping the home screen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(true)
	},
}

func runApp(browseMode bool) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := session.Open(config.SessionPath())
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer store.Close()

	saved, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	return tui.Run(tui.Opts{
		Client:     api.New(cfg.APIURL),
		Sessions:   store,
		Timeout:    cfg.Timeout(),
		Saved:      saved,
		Version:    version,
		BrowseMode: browseMode,
	})
}
