package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/progress"
	"github.com/openwaqf/wird/internal/utils"
)

var summaryFormat string

// summaryCmd prints the per-category completion breakdown, streak and the
// all-done state for today.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Daily summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.ps.DayState()
		s := utils.Summary{
			Day:     time.Now().Format("2006-01-02"),
			Streak:  a.ps.Streak(),
			AllDone: state.AllMainDone(),
		}
		for _, cat := range progress.MainCategories {
			items := a.categoryItems(cat)
			completed := 0
			for _, it := range items {
				if state.Completed(cat, it.ID) {
					completed++
				}
			}
			s.Rows = append(s.Rows, utils.SummaryRow{
				Category:  a.T(cat, cat),
				Completed: completed,
				Total:     len(items),
				Done:      state.CategoriesDone[cat],
			})
		}

		renderConfig := utils.DefaultRenderConfig()
		if summaryFormat != "" {
			renderConfig.Format = utils.OutputFormat(summaryFormat)
		}
		out, err := utils.NewRenderer(renderConfig).RenderSummary(s)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "default", "Output format: default, json")
}
