// Package cmd - rates command
package cmd

import (
	"github.com/spf13/cobra"

	"site-quote/core/output"
	"site-quote/core/pricing"
	"site-quote/internal/config"
)

var ratesFormat string

// ratesCmd prints the rate table
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the rate table",
	Long: `Print every option and tier with the rate it is billed at.

Examples:
  site-quote rates
  site-quote rates --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := config.Get().Output.Format
		if cmd.Flags().Changed("format") {
			format = ratesFormat
		}
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		formatter, err := output.DefaultRegistry().Get(f)
		if err != nil {
			return err
		}
		lang, err := displayLang()
		if err != nil {
			return err
		}
		return formatter.RenderRates(cmd.OutOrStdout(), &output.RatesResult{
			Rates:   pricing.DefaultRates(),
			Lang:    lang,
			NoColor: colorDisabled(),
		})
	},
}

func init() {
	ratesCmd.Flags().StringVarP(&ratesFormat, "format", "f", "", "output format (cli, json, markdown)")
}
