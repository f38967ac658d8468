package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/flickrsync/internal/downloader"
	"github.com/lehigh-university-libraries/flickrsync/internal/ledger"
	"github.com/lehigh-university-libraries/flickrsync/internal/progress"
	"github.com/lehigh-university-libraries/flickrsync/internal/report"
)

func newDownloadCmd(opts *globalOptions) *cobra.Command {
	var (
		ledgerPath  string
		parquetPath string
		reportPath  string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Write a CSV ledger of the photos already on Flickr",
		Long: `Walks every photo on the authenticated Flickr account and writes one row per
photo to a CSV ledger: flickr_id, title, desc, tags, machine_tags, flickr_url.

Line breaks in descriptions are written as a literal \n so each photo stays on one
line. The ledger is overwritten at the start of the run; a network or API error
aborts the run and leaves the rows written so far.`,
		Example: `  # Write flickrResults.csv
  flickrsync download

  # Also export the ledger as Parquet
  flickrsync download --ledger photos.csv --parquet photos.parquet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ledger") {
				cfg.Download.Ledger = ledgerPath
			}

			stop, err := startLogging(cmd, opts, cfg.Download.LogFile)
			if err != nil {
				return err
			}
			defer stop()

			csvWriter, err := ledger.CreateCSV(cfg.Download.Ledger)
			if err != nil {
				return err
			}
			writers := []ledger.Writer{csvWriter}

			if parquetPath != "" {
				pw, err := ledger.CreateParquet(parquetPath)
				if err != nil {
					_ = csvWriter.Close()
					return err
				}
				writers = append(writers, pw)
			}

			w := ledger.Multi(writers...)
			defer func() {
				if err := w.Close(); err != nil {
					slog.Error("Failed to close ledger", "path", cfg.Download.Ledger, "error", err)
				}
			}()

			client, _, err := connect(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			pipeline := downloader.New(client, w, downloader.Options{
				Extras:  cfg.Download.Extras,
				PerPage: cfg.Download.PerPage,
				Progress: func(total int) progress.Bar {
					return progress.New(cmd.ErrOrStderr(), total, "Downloading metadata...")
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

	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "CSV ledger path (default flickrResults.csv)")
	cmd.Flags().StringVar(&parquetPath, "parquet", "", "Also write the ledger as Parquet to this path")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML run summary to this path")

	return cmd
}
