package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pagebind/internal/listing"
	"github.com/pdiddy/pagebind/internal/pages"
	"github.com/pdiddy/pagebind/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [input-root]",
	Short: "Show the page order convert would produce",
	Long: `Plan lists the pages of the volume in output order without decoding
any image or writing anything. The first row is the cover candidate.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindFlags,
	RunE:    runPlan,
}

func init() {
	planCmd.Flags().String("input", "", "input root holding chapter folders or page images")
	planCmd.Flags().String("mode", string(types.ModeAuto), "input layout: auto, grouped, or flat")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), args)
	if err != nil {
		return err
	}
	cfg = cfg.Normalize()
	if cfg.InputRoot == "" {
		return types.ConfigError("input_root", "is required")
	}
	return printPlan(cmd.OutOrStdout(), osfs.New(cfg.InputRoot), cfg.Mode)
}

// printPlan writes the page order of the tree in fsys as a table followed by
// a one-line summary.
func printPlan(w io.Writer, fsys billy.Filesystem, mode types.Mode) error {
	mode, err := listing.ResolveMode(fsys, ".", mode)
	if err != nil {
		return err
	}
	entries, err := pages.Plan(fsys, ".", mode)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return types.EmptyInputError(".")
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		group := e.Group
		if group == "" {
			group = "-"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), group, e.Name})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Page", "Chapter", "File"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))
	fmt.Fprintf(w, "%d pages (%s mode)\n", len(entries), mode)
	return nil
}
