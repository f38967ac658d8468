package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/flickrsync/internal/museum"
	"github.com/lehigh-university-libraries/flickrsync/internal/photo"
	"github.com/lehigh-university-libraries/flickrsync/internal/tags"
	"github.com/lehigh-university-libraries/flickrsync/internal/uploader"
)

func newLookupCmd(opts *globalOptions) *cobra.Command {
	var tagStyle string

	cmd := &cobra.Command{
		Use:   "lookup <identifier|filename>...",
		Short: "Print the metadata an upload would use",
		Long: `Fetches records from the museum API and prints the title, description block
and tags exactly as they would be sent to Flickr. Filenames are reduced to their
record identifier first, so 70152_001.jpg looks up record 70152.`,
		Example: `  flickrsync lookup 70152
  flickrsync lookup 70152_001.jpg 70153_002.jpg --tag-style hyphen`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tag-style") {
				cfg.Upload.TagStyle = tagStyle
			}
			style, err := tags.ParseStyle(cfg.Upload.TagStyle)
			if err != nil {
				return err
			}

			stop, err := startLogging(cmd, opts, "-")
			if err != nil {
				return err
			}
			defer stop()

			enricher := &uploader.Enricher{
				Records:         museum.NewClient(cfg.Museum.RecordBaseURL, museumHTTPClient()),
				TagStyle:        style,
				ObjectURLPrefix: cfg.Museum.ObjectURLPrefix,
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				id := photo.Identifier(arg)
				meta, err := enricher.Enrich(cmd.Context(), id)
				if err != nil {
					var statusErr *museum.StatusError
					if errors.As(err, &statusErr) {
						fmt.Fprintf(out, "%s: response code %d\n\n", id, statusErr.StatusCode)
						continue
					}
					return err
				}

				fmt.Fprintf(out, "Identifier: %s\n", meta.Identifier)
				fmt.Fprintf(out, "Flickr title: %s\n", meta.Title)
				fmt.Fprintf(out, "Tags: %s\n", meta.Tags)
				fmt.Fprintf(out, "--------\n%s\n\n", meta.Description)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&tagStyle, "tag-style", "", "Multi-word department tags: quote or hyphen (default quote)")

	return cmd
}
