package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favList bool

var favCmd = &cobra.Command{
	Use:   "fav [item-id]",
	Short: "Toggle or list favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		if favList || len(args) == 0 {
			ids := a.ps.Favorites()
			if len(ids) == 0 {
				fmt.Println(a.T("no_favorites", "No favorites yet."))
				return nil
			}
			for _, id := range ids {
				if it, ok := a.cat.Find(id); ok {
					fmt.Printf("%-24s %s\n", it.ID, it.Reference)
				} else {
					fmt.Println(id)
				}
			}
			return nil
		}

		item, ok := a.cat.Find(args[0])
		if !ok {
			return fmt.Errorf("unknown item %q", args[0])
		}
		nowFav, err := a.ps.ToggleFavorite(item.ID)
		if err != nil {
			return err
		}
		if nowFav {
			a.engine.LightTap()
			fmt.Printf("♥ %s added to favorites\n", item.ID)
		} else {
			fmt.Printf("%s removed from favorites\n", item.ID)
		}
		return nil
	},
}

func init() {
	favCmd.Flags().BoolVarP(&favList, "list", "l", false, "List favorites")
}
