package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tablekit-cli/internal/stats"
	"github.com/KaramelBytes/tablekit-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	statsField  string
	statsFields []string
	statsSteps  int
	statsJSON   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Histogram, box plot, correlation matrix, and trend forecast",
}

var statsHistCmd = &cobra.Command{
	Use:   "hist <file>",
	Short: "Histogram binning for one numeric field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsField == "" {
			return fmt.Errorf("--field is required")
		}
		rows, err := loadSample(args[0])
		if err != nil {
			return err
		}
		bins, err := stats.Histogram(rows, statsField)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(bins)
		}
		for _, b := range bins {
			fmt.Printf("%-24s %s\n", b.Label, strings.Repeat("#", b.Frequency))
		}
		return nil
	},
}

var statsBoxCmd = &cobra.Command{
	Use:   "box <file>",
	Short: "Five-number summary with Tukey-fence outliers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsField == "" {
			return fmt.Errorf("--field is required")
		}
		rows, err := loadSample(args[0])
		if err != nil {
			return err
		}
		box, err := stats.BoxPlotField(rows, statsField)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(box)
		}
		fmt.Printf("q1=%v q2=%v q3=%v whiskers=[%v, %v]\n", box.Q1, box.Q2, box.Q3, box.LowerWhisker, box.UpperWhisker)
		if len(box.Outliers) > 0 {
			fmt.Printf("outliers: %v\n", box.Outliers)
		}
		return nil
	},
}

var statsCorrCmd = &cobra.Command{
	Use:   "corr <file>",
	Short: "Pearson correlation matrix over selected numeric fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := splitKeys(statsFields)
		rows, err := loadSample(args[0])
		if err != nil {
			return err
		}
		mat, err := stats.CorrelationMatrix(rows, fields)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(mat.Triples())
		}
		fmt.Printf("%-16s", "")
		for _, f := range mat.Fields {
			fmt.Printf("%-16s", f)
		}
		fmt.Println()
		for i, f := range mat.Fields {
			fmt.Printf("%-16s", f)
			for j := range mat.Fields {
				fmt.Printf("%-16.3f", mat.Values[i][j])
			}
			fmt.Println()
		}
		return nil
	},
}

var statsTrendCmd = &cobra.Command{
	Use:   "trend <file>",
	Short: "First-difference trend forecast for an ordered numeric field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsField == "" {
			return fmt.Errorf("--field is required")
		}
		steps := statsSteps
		if cfg != nil && cfg.MaxForecast > 0 && steps > cfg.MaxForecast {
			return fmt.Errorf("--steps %d exceeds configured maximum %d", steps, cfg.MaxForecast)
		}
		rows, err := loadSample(args[0])
		if err != nil {
			return err
		}
		trend, err := stats.ForecastField(rows, statsField, steps)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(trend)
		}
		fmt.Printf("trend per step: %v\n", trend.Slope)
		fmt.Printf("forecast: %v\n", trend.Forecast)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{statsHistCmd, statsBoxCmd, statsTrendCmd} {
		c.Flags().StringVar(&statsField, "field", "", "numeric field to analyze")
	}
	statsCorrCmd.Flags().StringSliceVar(&statsFields, "fields", nil, "numeric fields to correlate (at least two)")
	statsTrendCmd.Flags().IntVar(&statsSteps, "steps", 3, "future points to extrapolate")
	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "print results as JSON")
	statsCmd.AddCommand(statsHistCmd, statsBoxCmd, statsCorrCmd, statsTrendCmd)
	rootCmd.AddCommand(statsCmd)
}

func printJSON(v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
