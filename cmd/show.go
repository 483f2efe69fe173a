package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/utils"
)

var (
	showShare bool
	showCopy  bool
)

var showCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Print one item's text",
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

		switch {
		case showShare:
			project := utils.ProjectURL(a.strs, a.lang)
			fmt.Println(utils.BuildShareText(item, a.lang, project))
		case showCopy:
			fmt.Println(utils.BuildCopyText(item, a.lang))
		default:
			if item.PreText != "" {
				fmt.Println(item.PreText)
			}
			fmt.Println(item.Arabic)
			if a.lang != "ar" {
				if item.Transliteration != "" {
					fmt.Println(item.Transliteration)
				}
				if t := item.TranslationFor(a.lang); t != "" {
					fmt.Println(t)
				}
			}
			fmt.Println(item.Reference)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showShare, "share", false, "Print the share composition with the project link")
	showCmd.Flags().BoolVar(&showCopy, "copy", false, "Print the clipboard composition")
}
