package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bluebull7/pulsevector-sim/internal/config"
	"github.com/Bluebull7/pulsevector-sim/internal/convert"
)

func newConvertCommand(configPath *string) *cobra.Command {
	var fallbackCurrency string

	cmd := &cobra.Command{
		Use:   "convert <input.gnucash> <output.gnucash>",
		Short: "Convert a GnuCash XML account tree to a SQLite book",
		Long: `Convert reads a GnuCash XML file (plain or gzip-compressed), extracts
its account hierarchy, and writes a fresh SQLite book holding the same
tree. Transactions, prices, and schedules are not carried over.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: convert requires <input.gnucash> and <output.gnucash>", ErrUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			if fallbackCurrency != "" {
				cfg.Converter.FallbackCurrency = fallbackCurrency
			}

			res, err := convert.Run(args[0], args[1], convert.Options{
				FallbackCurrency: cfg.Converter.FallbackCurrency,
				CurrencyNames:    cfg.Converter.CurrencyNames,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", res.OutputPath)
			fmt.Fprintf(out, "Accounts created: %d\n", res.Created)
			if res.SkippedTransactions > 0 {
				fmt.Fprintf(out, "Transactions skipped: %d\n", res.SkippedTransactions)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fallbackCurrency, "currency", "", "fallback currency code when the source declares none")

	return cmd
}
