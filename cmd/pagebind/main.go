// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pagebind CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagebind/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --log-level and --log-format before any
// subcommand runs.
var logger = logging.Discard()

// rootCmd is the base command for the pagebind CLI.
var rootCmd = &cobra.Command{
	Use:   "pagebind",
	Short: "Bind folders of page images into one PDF volume",
	Long: `pagebind turns a directory of chapter folders (or one folder of page
images) into a single PDF volume for an e-reader. Pages are ordered by name,
a landscape cover is turned upright, every page is downscaled, and the
document title and author are written into the PDF.

Settings come from flags, PAGEBIND_* environment variables, or a config file
(see "pagebind config init").`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logging.Options{
			Level:  viper.GetString("log_level"),
			Format: viper.GetString("log_format"),
			Writer: os.Stderr,
			Color:  isatty.IsTerminal(os.Stderr.Fd()),
		})
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pagebind.yaml or ~/.config/pagebind/pagebind.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pagebind")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pagebind"))
		}
	}

	viper.SetEnvPrefix("PAGEBIND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
