package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/progress"
)

var (
	resetCategory string
	resetYes      bool
)

var resetCmd = &cobra.Command{
	Use:   "reset [item-id]",
	Short: "Reset an item's progress, or a whole category",
	Long: `Examples:
	wird reset sub7an-allah              # one item
	wird reset --category morning        # every morning item (asks first)
	wird reset --category favorites -y`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		if resetCategory != "" {
			if !progress.ValidCategory(resetCategory) {
				return fmt.Errorf("unknown category %q", resetCategory)
			}
			if !resetYes && !confirm(a.T("reset_confirm", "Reset this category?")) {
				return nil
			}
			items := a.categoryItems(resetCategory)
			if err := a.ps.ResetCategory(resetCategory, items); err != nil {
				return err
			}
			fmt.Printf("Reset %d item(s) in %s.\n", len(items), resetCategory)
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("pass an item id or --category")
		}
		item, ok := a.cat.Find(args[0])
		if !ok {
			return fmt.Errorf("unknown item %q", args[0])
		}
		category, err := a.resolveItemCategory(cmd.Flag("in").Value.String(), item)
		if err != nil {
			return err
		}
		if err := a.ps.ResetItem(category, item.ID); err != nil {
			return err
		}
		// Re-derive category completion after the reset; one consistent
		// rule for every reset path.
		if category != progress.CategoryFavorites {
			if _, err := a.ps.CheckCategoryCompletion(category, a.categoryItems(category)); err != nil {
				return err
			}
		}
		fmt.Printf("%s reset.\n", item.ID)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	resetCmd.Flags().StringVar(&resetCategory, "category", "", "Reset every item in this category")
	resetCmd.Flags().String("in", "", "Category context for a single-item reset (default by time of day)")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}
