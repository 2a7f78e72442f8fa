package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wslforge/wslforge/internal/keyring"
	"github.com/wslforge/wslforge/internal/release"
	"github.com/wslforge/wslforge/internal/version"
)

// ReleaseCheckOutput represents release check output for JSON.
type ReleaseCheckOutput struct {
	Repo   string         `json:"repo"`
	Status release.Status `json:"status"`
}

// newReleaseCmd creates the release command group.
func (cli *CLI) newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Check upstream releases and manage the GitHub token",
		Long: `Check the configured GitHub repository for new releases.

An optional personal access token raises the API rate limit. The
token is stored in the operating system keyring, never on disk.

Examples:
  # Probe the latest upstream release
  wslforge release check

  # Store a GitHub token for authenticated requests
  wslforge release token set

  # Remove the stored token
  wslforge release token clear`,
	}

	cmd.AddCommand(
		cli.newReleaseCheckCmd(),
		cli.newReleaseTokenCmd(),
	)

	return cmd
}

// newReleaseCheckCmd creates the release check command.
func (cli *CLI) newReleaseCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check for a newer upstream release",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(cli.outputFlag)
			if err != nil {
				return err
			}

			owner, name, err := cli.Config.RepoOwnerName()
			if err != nil {
				return err
			}

			token, err := cli.Keyring.Get(release.TokenKey)
			if err != nil && !errors.Is(err, keyring.ErrSecretNotFound) {
				return fmt.Errorf("failed to read token from keyring: %w", err)
			}

			client := release.NewClient(token)
			rel, err := client.Latest(cmd.Context(), owner, name)
			if err != nil {
				if errors.Is(err, release.ErrNoReleases) {
					fmt.Printf("%s/%s has no published releases\n", owner, name)
					return nil
				}
				return err
			}

			status := release.Compare(version.Get().Version, rel)

			output := ReleaseCheckOutput{
				Repo:   cli.Config.ReleaseRepo,
				Status: status,
			}

			writer := NewOutputWriter(format)
			return writer.Write(output, func() {
				fmt.Printf("Repository:     %s\n", output.Repo)
				fmt.Printf("Latest release: %s\n", status.LatestTag)
				fmt.Printf("Current:        %s\n", status.Current)
				if status.URL != "" {
					fmt.Printf("URL:            %s\n", status.URL)
				}
				fmt.Println()

				switch {
				case !status.Comparable:
					fmt.Println("Current version is not comparable to the release tag.")
				case status.UpdateAvailable:
					fmt.Println("An update is available.")
				default:
					fmt.Println("Up to date.")
				}
			})
		},
	}
}

// newReleaseTokenCmd creates the release token command group.
func (cli *CLI) newReleaseTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the GitHub token used for release checks",
	}

	cmd.AddCommand(
		cli.newReleaseTokenSetCmd(),
		cli.newReleaseTokenClearCmd(),
	)

	return cmd
}

// newReleaseTokenSetCmd creates the release token set command.
func (cli *CLI) newReleaseTokenSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Store a GitHub token in the keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.Keyring.IsAvailable(); err != nil {
				return fmt.Errorf("keyring unavailable: %w", err)
			}

			fmt.Print("GitHub token: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			token, err := reader.ReadString('\n')
			if err != nil && token == "" {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("token must not be empty")
			}

			if err := cli.Keyring.Set(release.TokenKey, token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}

			fmt.Println("Token stored in keyring")
			return nil
		},
	}
}

// newReleaseTokenClearCmd creates the release token clear command.
func (cli *CLI) newReleaseTokenClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Aliases: []string{"delete", "rm"},
		Short:   "Remove the stored GitHub token",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cli.Keyring.Delete(release.TokenKey)
			if errors.Is(err, keyring.ErrSecretNotFound) {
				fmt.Println("No token stored")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}

			fmt.Println("Token removed from keyring")
			return nil
		},
	}
}
