package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/alexgenc/hack-or-snooze/internal/api"
	"github.com/alexgenc/hack-or-snooze/internal/config"
	"github.com/alexgenc/hack-or-snooze/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// openEnv loads the config and session store shared by the account and
// story subcommands. The caller owns closing the store.
func openEnv() (*config.Config, *session.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := session.Open(config.SessionPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}
	return cfg, store, nil
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and save the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openEnv()
		if err != nil {
			return err
		}
		defer store.Close()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		user, err := api.New(cfg.APIURL).Login(ctx, args[0], password)
		if errors.Is(err, api.ErrInvalidCredentials) {
			return errors.New("invalid username or password")
		}
		if err != nil {
			return fmt.Errorf("logging in: %w", err)
		}

		if err := store.Save(session.Session{Token: user.Token, Username: user.Username}); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("Logged in as %s.\n", user.Username)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <username>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openEnv()
		if err != nil {
			return err
		}
		defer store.Close()

		name, err := readLine("Full name: ")
		if err != nil {
			return err
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		user, err := api.New(cfg.APIURL).Signup(ctx, args[0], password, name)
		if errors.Is(err, api.ErrUsernameTaken) {
			return fmt.Errorf("username %q is already taken", args[0])
		}
		if err != nil {
			return fmt.Errorf("signing up: %w", err)
		}

		if err := store.Save(session.Session{Token: user.Token, Username: user.Username}); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("Welcome, %s! Logged in as %s.\n", user.Name, user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openEnv()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
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
			fmt.Println("Not logged in.")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		user, err := api.New(cfg.APIURL).LoggedInUser(ctx, saved.Token, saved.Username)
		if err != nil {
			return fmt.Errorf("fetching account: %w", err)
		}

		fmt.Printf("Username:  %s\n", user.Username)
		fmt.Printf("Name:      %s\n", user.Name)
		fmt.Printf("Joined:    %s\n", user.CreatedAt.Format("Jan 2, 2006"))
		fmt.Printf("Favorites: %d\n", len(user.Favorites))
		fmt.Printf("Stories:   %d\n", len(user.OwnStories))
		return nil
	},
}
