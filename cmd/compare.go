package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tablekit-cli/internal/compare"
	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/export"
	"github.com/KaramelBytes/tablekit-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	cmpKeys      []string
	cmpExport    bool
	cmpExportDir string
	cmpJSON      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <source-file> <target-file>",
	Short: "Partition two datasets by join key into same/added/removed/changed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim, err := inputDelimiter()
		if err != nil {
			return err
		}
		src := dataset.NewFileSource()
		source, err := src.Load(args[0], delim)
		if err != nil {
			return fmt.Errorf("load source: %w", err)
		}
		target, err := src.Load(args[1], delim)
		if err != nil {
			return fmt.Errorf("load target: %w", err)
		}

		keys := splitKeys(cmpKeys)
		if len(keys) == 0 {
			keys = commonColumns(source.Columns, target.Columns)
		}
		res, err := compare.Compare(source.Rows, target.Rows, keys)
		if err != nil {
			return err
		}
		sum := res.Summary()

		if cmpJSON {
			b, err := utils.PrettyJSON(sum)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		} else {
			fmt.Printf("Compared %s → %s on keys [%s]\n", source.Name, target.Name, strings.Join(keys, ", "))
			fmt.Printf("  same:        %d\n", sum.Same)
			fmt.Printf("  source only: %d\n", sum.SourceOnly)
			fmt.Printf("  target only: %d\n", sum.TargetOnly)
			fmt.Printf("  different:   %d\n", sum.Different)
			if sum.DuplicateKeys > 0 {
				fmt.Printf("⚠ %d duplicate key(s) in target; first occurrence kept\n", sum.DuplicateKeys)
			}
		}

		if cmpExport {
			dir := cmpExportDir
			if dir == "" {
				dir = filepath.Join(cfg.ExportDir, "compare")
			}
			ed, err := exportDelimiter()
			if err != nil {
				return err
			}
			paths, err := export.ComparisonFiles(dir, source.Columns, res, ed)
			if err != nil {
				return fmt.Errorf("export comparison: %w", err)
			}
			for _, p := range paths {
				fmt.Printf("✓ Wrote %s\n", p)
			}
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringSliceVar(&cmpKeys, "keys", nil, "join key columns (default: all columns common to both files)")
	compareCmd.Flags().BoolVar(&cmpExport, "export", false, "write one delimited file per partition")
	compareCmd.Flags().StringVar(&cmpExportDir, "export-dir", "", "directory for partition files (default: <export_dir>/compare)")
	compareCmd.Flags().BoolVar(&cmpJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(compareCmd)
}

func splitKeys(keys []string) []string {
	var out []string
	for _, k := range keys {
		for _, part := range strings.Split(k, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func commonColumns(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, c := range b {
		set[c] = true
	}
	var out []string
	for _, c := range a {
		if set[c] {
			out = append(out, c)
		}
	}
	return out
}
