package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorise flickrsync with Flickr and store the access token",
		Long: `Checks the stored Flickr access token and, when it is missing or lacks write
permission, walks through the out-of-band OAuth flow: open the printed URL,
authorise the app and paste the verifier code shown by Flickr.

The token is stored at flickr.token_path (default .flickr/token.json).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			stop, err := startLogging(cmd, opts, "-")
			if err != nil {
				return err
			}
			defer stop()

			client, _, err := connect(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			user, err := client.TestLogin(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nAuthorised as %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	return cmd
}
