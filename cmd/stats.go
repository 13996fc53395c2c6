package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/dashboard"
	"github.com/bookfather/admin/internal/export"
)

func newStatsCmd(o *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how many books, categories and banners the catalog holds",
		Long: `Fetches the three collections concurrently and prints their sizes. A
collection that cannot be fetched is logged and counted as 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := o.api()
			if err != nil {
				return err
			}

			counts := dashboard.Load(cmd.Context(), dashboard.FromAPI(api))
			table := export.Table{
				Header: []string{"Books", "Categories", "Banners"},
				Rows: [][]string{{
					strconv.Itoa(counts.Books),
					strconv.Itoa(counts.Categories),
					strconv.Itoa(counts.Banners),
				}},
			}
			return export.Write(cmd.OutOrStdout(), format, counts, table)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", export.FormatText, "Output format (text, json, yaml, csv)")
	return cmd
}
