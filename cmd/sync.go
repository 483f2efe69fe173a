package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// syncCmd refreshes the offline copy: populate this build's cache
// generation, then retire every older generation.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the offline copy of the catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := a.cache.Install(ctx); err != nil {
			return err
		}
		if err := a.cache.Activate(); err != nil {
			return err
		}
		fmt.Println("Offline cache ready:", a.cache.Generation())
		return nil
	},
}
