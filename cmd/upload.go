package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/flickrsync/internal/flickr"
	"github.com/lehigh-university-libraries/flickrsync/internal/museum"
	"github.com/lehigh-university-libraries/flickrsync/internal/progress"
	"github.com/lehigh-university-libraries/flickrsync/internal/report"
	"github.com/lehigh-university-libraries/flickrsync/internal/tags"
	"github.com/lehigh-university-libraries/flickrsync/internal/uploader"
)

func newUploadCmd(opts *globalOptions) *cobra.Command {
	var (
		pattern    string
		tagStyle   string
		fileList   string
		reportPath string
		dryRun     bool
		private    bool
	)

	cmd := &cobra.Command{
		Use:   "upload [dir]",
		Short: "Upload JPEGs to Flickr with metadata from the museum API",
		Long: `Reads JPEG files in a directory and uploads them to Flickr.

Files are expected to carry a record identifier before the first underscore,
i.e. 70152_001.jpg. Each record is fetched from the Auckland Museum API to build
the title, a description block and department tags. Records the API does not
return are skipped; the run continues with the next file.`,
		Example: `  # Upload every JPEG in the current directory
  flickrsync upload

  # Preview metadata for a folder without uploading
  flickrsync upload ./scans --dry-run

  # Hyphenate multi-word departments and keep a YAML summary
  flickrsync upload ./scans --tag-style hyphen --report runs/upload.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("pattern") {
				cfg.Upload.Pattern = pattern
			}
			if flags.Changed("tag-style") {
				cfg.Upload.TagStyle = tagStyle
			}
			if flags.Changed("file-list") {
				cfg.Upload.FileList = fileList
			}
			if private {
				cfg.Upload.IsPublic = false
			}

			style, err := tags.ParseStyle(cfg.Upload.TagStyle)
			if err != nil {
				return err
			}

			stop, err := startLogging(cmd, opts, cfg.Upload.LogFile)
			if err != nil {
				return err
			}
			defer stop()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			var photos uploader.PhotoService
			if !dryRun {
				client, _, err := connect(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				photos = client
			}

			enricher := &uploader.Enricher{
				Records:         museum.NewClient(cfg.Museum.RecordBaseURL, museumHTTPClient()),
				TagStyle:        style,
				ObjectURLPrefix: cfg.Museum.ObjectURLPrefix,
			}

			pipeline := uploader.New(enricher, photos, uploader.Options{
				Dir:      dir,
				Pattern:  cfg.Upload.Pattern,
				FileList: cfg.Upload.FileList,
				DryRun:   dryRun,
				Visibility: flickr.Visibility{
					Public:      cfg.Upload.IsPublic,
					Friends:     cfg.Upload.IsFriend,
					Family:      cfg.Upload.IsFamily,
					ContentType: cfg.Upload.ContentType,
				},
				Progress: func(total int) progress.Bar {
					return progress.New(cmd.ErrOrStderr(), total, "Uploading...")
				},
			})

			run, err := pipeline.Run(cmd.Context())
			if reportPath != "" && run != nil {
				if saveErr := report.Save(reportPath, run); saveErr != nil {
					return saveErr
				}
			}
			if err != nil {
				return err
			}

			printSummary(cmd, run)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob for files to upload (default *.jpg)")
	cmd.Flags().StringVar(&tagStyle, "tag-style", "", "Multi-word department tags: quote or hyphen (default quote)")
	cmd.Flags().StringVar(&fileList, "file-list", "", "CSV list of processed files (default file_list.csv, empty disables)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML run summary to this path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Look up metadata without uploading")
	cmd.Flags().BoolVar(&private, "private", false, "Upload as private photos")

	return cmd
}

func printSummary(cmd *cobra.Command, run *report.Run) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintf(out, "%s complete\n", run.Command)
	fmt.Fprintln(out, "========================================")
	fmt.Fprintf(out, "Total:     %d\n", run.Total)
	switch run.Command {
	case "upload":
		fmt.Fprintf(out, "Uploaded:  %d\n", run.Uploaded)
		fmt.Fprintf(out, "Skipped:   %d\n", run.Skipped)
		fmt.Fprintf(out, "Failed:    %d\n", run.Failed)
	default:
		fmt.Fprintf(out, "Written:   %d\n", run.Written)
	}
	fmt.Fprintln(out, "========================================")
}
