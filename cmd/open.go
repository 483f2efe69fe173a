package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/platform"
	"github.com/openwaqf/wird/internal/utils"
)

// openCmd jumps straight to an item's external verification source,
// skipping all other startup work.
var openCmd = &cobra.Command{
	Use:   "open <item-id>",
	Short: "Open an item's verification source in the browser",
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
		target := item.VerifyURL
		if target == "" {
			// items without a direct link resolve through the site
			target = utils.BuildVerifyURL(utils.ProjectURL(a.strs, a.lang), item)
		}
		return platform.OpenExternal(target)
	},
}
