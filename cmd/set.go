package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/store"
)

// settable preference flags, by their persisted key.
var settings = map[string]string{
	"lang":       store.KeyLang,
	"dark":       store.KeyDarkMode,
	"oled":       store.KeyOledMode,
	"font-scale": store.KeyFontScale,
	"haptics":    store.KeyHaptics,
	"kids":       store.KeyKidsMode,
	"details":    store.KeyDetails,
}

var setCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Change a persisted preference",
	Long: `Settings: lang, dark, oled, font-scale, haptics, kids, details.
Boolean settings take true/false; lang takes en|ar|fr|it|es.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, value := args[0], args[1]
		key, ok := settings[name]
		if !ok {
			return fmt.Errorf("unknown setting %q", name)
		}
		if key == store.KeyLang && !store.SupportedLang(value) {
			return fmt.Errorf("unsupported language %q", value)
		}

		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.kv.Put(key, value); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", name, value)
		return nil
	},
}
