// Package cmd provides the CLI commands for site-quote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"site-quote/core/i18n"
	"site-quote/internal/config"
	"site-quote/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile  string
	verbose  bool
	langFlag string
	noColor  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "site-quote",
	Short: "Instant website project quotes",
	Long: `site-quote prices a website project from a handful of options and
prints an itemized, non-binding estimate.

It also hosts the animated backgrounds of the quote page, either live in the
terminal or exported as PNG frames.

Examples:
  site-quote estimate
  site-quote estimate --type ecommerce --pages 12 --complexity advanced
  site-quote estimate quote.hcl --var pages=8 --format markdown
  site-quote rates --format json
  site-quote surface run --variant ripple`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logging.Sync()
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "display language (en, fi), default from config or LANG")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(surfaceCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func initConfig() {
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// displayLang resolves the language from the flag, then the config, then
// the process locale
func displayLang() (i18n.Lang, error) {
	if langFlag != "" {
		return i18n.ParseLang(langFlag)
	}
	if l := config.Get().Quote.Language; l != "" {
		return i18n.ParseLang(l)
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return i18n.Detect(v), nil
		}
	}
	return i18n.LangEN, nil
}

func colorDisabled() bool {
	return noColor || config.Get().Output.NoColor || os.Getenv("NO_COLOR") != ""
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "site-quote version %s\n", Version)
	},
}
