package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/flickrsync/internal/ledger"
)

func newLedgerCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger <file>",
		Short: "Show a ledger written by download",
		Long:  `Reads a CSV or Parquet ledger and prints its rows as a table.`,
		Example: `  flickrsync ledger flickrResults.csv
  flickrsync ledger photos.parquet --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := ledger.Read(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderLedger(out, rows, limit)
			fmt.Fprintf(out, "%d photos in %s\n", len(rows), args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows to print (-1 for all)")

	return cmd
}

func renderLedger(out io.Writer, rows []ledger.Row, limit int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Flickr ID", "Title", "Tags", "Machine tags", "URL"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40, WidthMaxEnforcer: text.Trim},
		{Number: 3, WidthMax: 40, WidthMaxEnforcer: text.Trim},
	})

	for i, row := range rows {
		if limit >= 0 && i >= limit {
			break
		}
		tw.AppendRow(table.Row{row.FlickrID, row.Title, row.Tags, row.MachineTags, row.URL})
	}
	tw.Render()
}
