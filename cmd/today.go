package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/progress"
	"github.com/openwaqf/wird/internal/utils"
)

var (
	todayCategory string
	todayFormat   string
	todayNoColor  bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's adhkar for a category",
	Long: `Examples:
	wird today                       # category picked by time of day
	wird today --category morning    # explicit category
	wird today --category favorites  # favorited items
	wird today --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		category := resolveCategory(todayCategory)
		items := a.categoryItems(category)
		view := buildCategoryView(a, category)

		// Rendering a fully completed category is also a completion
		// signal, same as finishing the last card.
		if category != progress.CategoryFavorites {
			if _, err := a.ps.CheckCategoryCompletion(category, items); err != nil {
				return err
			}
		}

		renderConfig := utils.DefaultRenderConfig()
		if todayNoColor {
			renderConfig.Color = false
		}
		if todayFormat != "" {
			renderConfig.Format = utils.OutputFormat(todayFormat)
		}
		out, err := utils.NewRenderer(renderConfig).RenderCategory(view)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func buildCategoryView(a *app, category string) utils.CategoryView {
	items := a.categoryItems(category)
	state := a.ps.DayState()
	favs := a.ps.Favorites()
	favSet := make(map[string]bool, len(favs))
	for _, id := range favs {
		favSet[id] = true
	}

	view := utils.CategoryView{
		Category:     category,
		Title:        a.T(category, category),
		CategoryDone: state.CategoriesDone[category],
		AllDone:      state.AllMainDone(),
		Total:        len(items),
	}
	if len(items) == 0 {
		if category == progress.CategoryFavorites {
			view.EmptyMessage = a.T("no_favorites", "No favorites yet.")
		} else {
			view.EmptyMessage = a.T("no_adkhar_found", "No Adhkar found")
		}
		return view
	}

	for _, it := range items {
		c := a.ps.CounterFor(category, it)
		card := utils.Card{
			ID:        it.ID,
			Arabic:    it.Arabic,
			Reference: it.Reference,
			PreText:   it.PreText,
			Current:   c.Current,
			Target:    c.Target,
			Percent:   c.Percent(),
			Done:      c.Done(),
			Favorite:  favSet[it.ID],
		}
		if a.lang != "ar" && a.kv.ShowDetails() {
			card.Transliteration = it.Transliteration
			card.Translation = it.TranslationFor(a.lang)
		}
		if card.Done {
			view.Completed++
		}
		view.Cards = append(view.Cards, card)
	}
	return view
}

func init() {
	todayCmd.Flags().StringVarP(&todayCategory, "category", "c", "", "Category: morning|evening|waking|sleep|favorites")
	todayCmd.Flags().StringVar(&todayFormat, "format", "default", "Output format: default, json, compact, quiet")
	todayCmd.Flags().BoolVar(&todayNoColor, "no-color", false, "Disable colored output")
}
