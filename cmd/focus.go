package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/ui"
)

var focusCategory string

var focusCmd = &cobra.Command{
	Use:   "focus <item-id>",
	Short: "Open the distraction-free counting view for one item",
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
		category, err := a.resolveItemCategory(focusCategory, item)
		if err != nil {
			return err
		}

		counter := a.ps.CounterFor(category, item)
		if counter.Done() {
			fmt.Printf("%s already complete (%d/%d)\n", item.ID, counter.Current, counter.Target)
			return nil
		}

		m := ui.NewFocus(a.ps, category, item, a.categoryItems(category), a.engine, a.cfg)
		return ui.RunFocus(m)
	},
}

func init() {
	focusCmd.Flags().StringVarP(&focusCategory, "category", "c", "", "Category context (default by time of day)")
}
