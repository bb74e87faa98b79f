package cmd

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/tablekit-cli/internal/chart"
	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/KaramelBytes/tablekit-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chartGroup string
	chartValue string
	chartAgg   string
	chartJSON  bool
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Group-by aggregation producing a chart-ready series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if chartGroup == "" {
			return fmt.Errorf("--group is required")
		}
		agg, err := chart.ParseAggType(chartAgg)
		if err != nil {
			return err
		}
		if agg != chart.AggCount && chartValue == "" {
			return fmt.Errorf("--value is required for aggregation %q", agg)
		}

		rows, err := loadSample(args[0])
		if err != nil {
			return err
		}
		series, err := chart.Aggregate(rows, chartGroup, chartValue, agg)
		if err != nil {
			var empty *chart.EmptyDatasetError
			if errors.As(err, &empty) {
				fmt.Println("No data to aggregate.")
				return nil
			}
			return err
		}

		if chartJSON {
			b, err := utils.PrettyJSON(series)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		for _, p := range series {
			fmt.Printf("%-24s %v\n", p.Name, p.Value)
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartGroup, "group", "", "column to group by")
	chartCmd.Flags().StringVar(&chartValue, "value", "", "column to aggregate (unused for count)")
	chartCmd.Flags().StringVar(&chartAgg, "agg", "count", "aggregation: count|sum|avg|max|min")
	chartCmd.Flags().BoolVar(&chartJSON, "json", false, "print the series as JSON")
	rootCmd.AddCommand(chartCmd)
}

// loadSample loads a file and hands back the capped sample the analysis core
// consumes.
func loadSample(path string) ([]dataset.Record, error) {
	delim, err := inputDelimiter()
	if err != nil {
		return nil, err
	}
	src := dataset.NewFileSource()
	ds, err := src.Load(path, delim)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return src.FetchSample(ds.ID, sampleLimit())
}
