package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/haptics"
)

var (
	countCategory string
	countTimes    int
)

var countCmd = &cobra.Command{
	Use:   "count <item-id>",
	Short: "Count a recitation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		item, ok := a.cat.Find(args[0])
		if !ok {
			return fmt.Errorf("unknown item %q", args[0])
		}
		category, err := a.resolveItemCategory(countCategory, item)
		if err != nil {
			return err
		}
		items := a.categoryItems(category)

		counter := a.ps.CounterFor(category, item)
		if counter.Done() {
			fmt.Printf("%s already at %d/%d\n", item.ID, counter.Current, counter.Target)
			return nil
		}

		if countTimes < 1 {
			countTimes = 1
		}
		for i := 0; i < countTimes && !counter.Done(); i++ {
			done, err := a.ps.Increment(&counter, items)
			if err != nil {
				return err
			}
			haptics.ForCounter(a.engine, counter.Current, counter.Target)
			if done {
				break
			}
		}

		fmt.Printf("%s %d/%d", item.ID, counter.Current, counter.Target)
		if counter.Done() {
			fmt.Print(" ✓")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	countCmd.Flags().StringVarP(&countCategory, "category", "c", "", "Category context (default by time of day)")
	countCmd.Flags().IntVarP(&countTimes, "times", "n", 1, "Number of counts to apply")
}
