package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pagebind/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pagebind configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Print a sample config file",
	Long: `Init prints a config file holding every setting at its default. Save it
as pagebind.yaml (or pass --format toml and load it with --config).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return writeSampleConfig(cmd.OutOrStdout(), format)
	},
}

func init() {
	configInitCmd.Flags().String("format", "yaml", "output format: yaml or toml")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// sampleConfig is the default configuration with placeholder paths.
func sampleConfig() types.Config {
	cfg := types.DefaultConfig()
	cfg.InputRoot = "input"
	cfg.OutputRoot = "output"
	cfg.OutputFilename = "volume"
	return cfg
}

func writeSampleConfig(w io.Writer, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		data, err = yaml.Marshal(sampleConfig())
	case "toml":
		data, err = toml.Marshal(sampleConfig())
	default:
		return types.ConfigError("format", "must be yaml or toml, got %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding sample config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
