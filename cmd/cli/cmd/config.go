// Package cmd - config command
package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"site-quote/core/i18n"
	"site-quote/core/ui"
	"site-quote/internal/config"
	"site-quote/internal/errors"
)

var configForce bool

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return errors.Internal("encode configuration", err)
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return errors.Newf(errors.TypeConfig, "%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		ui.NewWriter(cmd.OutOrStdout(), colorDisabled()).Success("wrote %s", path)
		return nil
	},
}

var configLangCmd = &cobra.Command{
	Use:   "set-lang <en|fi>",
	Short: "Remember the display language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := i18n.ParseLang(args[0])
		if err != nil {
			return err
		}
		cfg := config.Get()
		cfg.Quote.Language = lang.String()
		if err := cfg.Save(configPath()); err != nil {
			return err
		}
		ui.NewWriter(cmd.OutOrStdout(), colorDisabled()).Success("language set to %s", lang)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configLangCmd)
}
