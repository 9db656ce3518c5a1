package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagebind/internal/convert"
	"github.com/pdiddy/pagebind/pkg/types"
)

// flagKeys maps command-line flags to the config keys they set.
var flagKeys = map[string]string{
	"input":          "input_root",
	"output-dir":     "output_root",
	"name":           "output_filename",
	"scale":          "downscale_factor",
	"author":         "author",
	"title":          "title",
	"subject":        "subject",
	"keywords":       "keywords",
	"cover":          "has_cover",
	"mode":           "mode",
	"cover-rotation": "cover_rotation",
	"quality":        "jpeg_quality",
	"progress":       "progress",
}

var convertCmd = &cobra.Command{
	Use:   "convert [input-root]",
	Short: "Convert a directory of page images into one PDF volume",
	Long: `Convert reads chapter folders (grouped mode) or page images (flat mode)
from the input root, turns a landscape cover upright, downscales every page,
and writes output-dir/name.pdf with the title and author set. Nothing is
written unless every page decodes and the factor is valid for all of them.

A .volume.yaml file in the input root supplies document information (title,
author, subject, keywords, creator); flags override it.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runConvert,
}

func init() {
	d := types.DefaultConfig()
	convertCmd.Flags().String("input", "", "input root holding chapter folders or page images")
	convertCmd.Flags().String("output-dir", ".", "directory the volume is written to")
	convertCmd.Flags().String("name", "", "output file name; .pdf is appended")
	convertCmd.Flags().Float64("scale", d.DownscaleFactor, "downscale factor applied to every page")
	convertCmd.Flags().String("author", d.Author, "document author")
	convertCmd.Flags().String("title", "", "document title (default: the output name)")
	convertCmd.Flags().String("subject", "", "document subject")
	convertCmd.Flags().String("keywords", "", "document keywords")
	convertCmd.Flags().Bool("cover", d.HasCover, "turn a landscape first page upright")
	convertCmd.Flags().String("mode", string(d.Mode), "input layout: auto, grouped, or flat")
	convertCmd.Flags().String("cover-rotation", string(d.CoverRotation), "cover rotation direction: cw or ccw")
	convertCmd.Flags().Int("quality", d.JPEGQuality, "JPEG quality of embedded pages (1-100)")
	convertCmd.Flags().Bool("progress", true, "show a progress bar while decoding (terminals only)")

	rootCmd.AddCommand(convertCmd)
}

// bindFlags binds the running command's flags to their config keys. Binding
// happens per invocation so commands sharing a flag name do not steal each
// other's binding.
func bindFlags(cmd *cobra.Command, args []string) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), args)
	if err != nil {
		return err
	}

	opts := convert.Options{
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	}
	if viper.GetBool("progress") && isatty.IsTerminal(os.Stderr.Fd()) {
		opts.Progress = decodeProgress(os.Stderr)
	}

	_, err = convert.Run(cfg, opts)
	return err
}

// loadConfig decodes the merged flag, environment, and file settings over
// the defaults. A positional input root wins over every other source.
func loadConfig(v *viper.Viper, args []string) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, types.ConfigError("config", "%v", err)
	}
	if len(args) > 0 {
		cfg.InputRoot = args[0]
	}
	return cfg, nil
}

// decodeProgress returns a callback that draws a progress bar on w. The bar is
// created on the first call, once the page count is known.
func decodeProgress(w io.Writer) func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription("Decoding"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
		if done == total {
			_ = bar.Finish()
		}
	}
}
