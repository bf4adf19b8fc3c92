package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/serralheria/internal/calculator"
	"github.com/mmynk/serralheria/internal/format"
	"github.com/mmynk/serralheria/internal/models"
	"github.com/mmynk/serralheria/internal/service"
)

// shortIDLen matches the quote number printed on PDF documents.
const shortIDLen = 8

// findQuote resolves a full quote ID or a unique ID prefix.
func findQuote(quotes *service.QuoteService, ref string) (models.Quote, error) {
	if q, err := quotes.Quote(ref); err == nil {
		return q, nil
	}

	var matches []models.Quote
	prefix := strings.ToLower(ref)
	for _, q := range quotes.Quotes() {
		if strings.HasPrefix(strings.ToLower(q.ID), prefix) {
			matches = append(matches, q)
		}
	}
	switch len(matches) {
	case 0:
		return models.Quote{}, fmt.Errorf("%w: %s", service.ErrQuoteNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Quote{}, fmt.Errorf("quote reference %q is ambiguous: %d matches", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func newListCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved quotes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quotes := a.quotes.Search(query)
			if len(quotes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum orçamento encontrado.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATA\tCLIENTE\tTELEFONE\tSTATUS\tTOTAL")
			for _, q := range quotes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(q.ID), q.Date, q.ClientName, q.ClientPhone, q.Status.Label(), format.Currency(q.Total))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by client name or phone")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one quote with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := findQuote(a.quotes, args[0])
			if err != nil {
				return err
			}
			return printQuote(cmd.OutOrStdout(), q)
		},
	}
}

func printQuote(w io.Writer, q models.Quote) error {
	fmt.Fprintf(w, "Orçamento %s (%s)\n", shortID(q.ID), q.Status.Label())
	fmt.Fprintf(w, "Data:     %s\n", q.Date)
	fmt.Fprintf(w, "Cliente:  %s\n", q.ClientName)
	fmt.Fprintf(w, "Telefone: %s\n", q.ClientPhone)
	if q.ClientAddress != "" {
		fmt.Fprintf(w, "Endereço: %s\n", q.ClientAddress)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tMATERIAL\tL x A\tQTD\tUNITÁRIO\tTOTAL")
	for _, item := range q.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s x %s\t%s\t%s\t%s\n",
			item.Name,
			item.Material,
			format.Measure(item.Width),
			format.Measure(item.Height),
			format.Quantity(item.Quantity),
			format.Currency(calculator.Normalize(item.PricePerUnit)),
			format.Currency(calculator.LineTotal(item)),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subtotal:    %s\n", format.Currency(calculator.Subtotal(q.Items)))
	fmt.Fprintf(w, "Adicional:   %s\n", format.Currency(calculator.Normalize(q.LaborCost)))
	_, err := fmt.Fprintf(w, "Total:       %s\n", format.Currency(q.Total))
	return err
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> <pending|approved|completed|cancelled>",
		Short:     "Change the status of a quote",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"pending", "approved", "completed", "cancelled"},
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := findQuote(a.quotes, args[0])
			if err != nil {
				return err
			}
			updated, err := a.quotes.SetStatus(cmd.Context(), q.ID, models.Status(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", shortID(updated.ID), updated.Status.Label())
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.quotes.Summary()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Orçamentos:      %d\n", s.QuoteCount)
			fmt.Fprintf(w, "Pendentes:       %d\n", s.PendingCount)
			fmt.Fprintf(w, "Total orçado:    %s\n", format.Currency(s.TotalQuoted))
			fmt.Fprintf(w, "Materiais:       %s\n", format.Currency(s.Categories.MaterialsValue))
			fmt.Fprintf(w, "Mão de obra:     %s\n", format.Currency(s.Categories.LaborValue))
			return nil
		},
	}
}
