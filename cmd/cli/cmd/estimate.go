// Package cmd - estimate command
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"site-quote/adapters/hcl"
	"site-quote/core/output"
	"site-quote/core/pricing"
	"site-quote/core/types"
	"site-quote/internal/config"
	"site-quote/internal/errors"
	"site-quote/internal/logging"
)

var (
	outputFormat string
	showDetails  bool
	quoteVars    []string

	projectType string
	pages       int
	complexity  string
	logo        bool
	copyPages   int
	seoLevel    string
	photos      int
	languages   int
	training    int
	maintenance string
	hosting     string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [quote.hcl]",
	Short: "Estimate the price of a website project",
	Long: `Price a website project and print the itemized estimate.

Options start from the defaults of a fresh quote form. A quote file, when
given, replaces them; flags set on the command line win over both.

Examples:
  site-quote estimate
  site-quote estimate --type ecommerce --pages 12 --seo advanced
  site-quote estimate quote.hcl --var pages=8
  site-quote estimate --lang fi --format markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	f.BoolVarP(&showDetails, "details", "d", false, "show the selection and unit rates")
	f.StringArrayVar(&quoteVars, "var", nil, "set a quote file variable (key=value), repeatable")

	f.StringVar(&projectType, "type", "", "project type (informational, ecommerce)")
	f.IntVar(&pages, "pages", 0, "number of pages")
	f.StringVar(&complexity, "complexity", "", "design complexity (simple, standard, advanced, premium)")
	f.BoolVar(&logo, "logo", false, "include logo design")
	f.IntVar(&copyPages, "copy-pages", 0, "pages of copywriting")
	f.StringVar(&seoLevel, "seo", "", "SEO package (none, basic, standard, advanced)")
	f.IntVar(&photos, "photos", 0, "photography sessions")
	f.IntVar(&languages, "languages", 0, "site languages, the first is included")
	f.IntVar(&training, "training", 0, "CMS training hours")
	f.StringVar(&maintenance, "maintenance", "", "maintenance plan (none, basic, pro, enterprise)")
	f.StringVar(&hosting, "hosting", "", "hosting plan (none, basic, pro, enterprise)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	log := logging.Named("estimate")
	cfg := config.Get()

	sel := types.DefaultSelection()
	if len(args) > 0 {
		vars, err := hcl.ParseVars(quoteVars)
		if err != nil {
			return err
		}
		sel, err = hcl.NewLoader(vars).LoadFile(args[0])
		if err != nil {
			return err
		}
		log.Debug("loaded quote file", zap.String("path", args[0]), zap.String("selection", sel.Fingerprint()))
	} else if len(quoteVars) > 0 {
		return errors.Input("--var requires a quote file")
	}

	sel, err := applyFlags(cmd.Flags(), sel)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = outputFormat
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

	breakdown := pricing.Estimate(sel)
	log.Debug("priced selection",
		zap.String("quote_id", breakdown.QuoteID),
		zap.String("first_month_total", breakdown.FirstMonthTotal.String()),
		zap.Int("items", len(breakdown.Items)))

	return formatter.Render(cmd.OutOrStdout(), &output.QuoteResult{
		Breakdown: breakdown,
		Lang:      lang,
		Details:   showDetails || cfg.Output.Details,
		NoColor:   colorDisabled(),
	})
}

// applyFlags overlays the option flags that were set explicitly
func applyFlags(flags *pflag.FlagSet, sel types.OptionSelection) (types.OptionSelection, error) {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}

	set("type", func() (e error) { sel.ProjectType, e = types.ParseProjectType(projectType); return })
	set("pages", func() error { sel.Pages = pages; return nil })
	set("complexity", func() (e error) { sel.Complexity, e = types.ParseComplexityTier(complexity); return })
	set("logo", func() error { sel.Logo = logo; return nil })
	set("copy-pages", func() error { sel.CopyPages = copyPages; return nil })
	set("seo", func() (e error) { sel.SEO, e = types.ParseSEOTier(seoLevel); return })
	set("photos", func() error { sel.PhotoSessions = photos; return nil })
	set("languages", func() error { sel.Languages = languages; return nil })
	set("training", func() error { sel.TrainingHours = training; return nil })
	set("maintenance", func() (e error) { sel.Maintenance, e = types.ParsePlanTier(maintenance); return })
	set("hosting", func() (e error) { sel.Hosting, e = types.ParsePlanTier(hosting); return })

	if err != nil {
		return sel, err
	}
	return sel.Normalize(), nil
}
