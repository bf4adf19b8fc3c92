package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/serralheria/internal/export"
)

func newPDFCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Write the PDF document of a saved quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := findQuote(a.quotes, args[0])
			if err != nil {
				return err
			}
			doc, err := export.QuotePDF(q, a.quotes.Business())
			if err != nil {
				return err
			}
			if out == "" {
				out = export.PDFFilename(q.ClientName)
			}
			return writeFile(cmd, out, doc)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default Orcamento_<client>.pdf)")
	return cmd
}

func newXLSXCmd(a *app) *cobra.Command {
	var out, query string

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Write the quote history as a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := export.HistoryXLSX(a.quotes.Search(query))
			if err != nil {
				return err
			}
			return writeFile(cmd, out, doc)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", export.HistoryFilename, "output file")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by client name or phone")
	return cmd
}

func writeFile(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", path, len(data))
	return nil
}
