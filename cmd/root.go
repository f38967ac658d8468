package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	verbose    bool
	logFile    string
}

func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "flickrsync",
		Short: "Sync museum photographs and metadata with Flickr",
		Long: `flickrsync moves collection photography between a local folder and Flickr.

Upload reads JPEGs named after their collection record (70152_001.jpg), looks each
record up in the Auckland Museum API and uploads the image with a title, description
and department tags. Download writes a CSV ledger of every photo already on the account.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to TOML config file (default flickrsync.toml if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Debug log file (defaults per command, \"-\" disables)")

	cmd.AddCommand(newAuthCmd(opts))
	cmd.AddCommand(newUploadCmd(opts))
	cmd.AddCommand(newDownloadCmd(opts))
	cmd.AddCommand(newLookupCmd(opts))
	cmd.AddCommand(newLedgerCmd(opts))

	return cmd
}
