package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openwaqf/wird/internal/catalog"
	"github.com/openwaqf/wird/internal/config"
	"github.com/openwaqf/wird/internal/haptics"
	"github.com/openwaqf/wird/internal/offline"
	"github.com/openwaqf/wird/internal/progress"
	"github.com/openwaqf/wird/internal/schedule"
	"github.com/openwaqf/wird/internal/store"
	"github.com/openwaqf/wird/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "wird",
	Short:   "Daily adhkar tracker",
	Version: version.GetVersion(),
}

func Execute() error { return rootCmd.Execute() }

func init() {
	cfg, _ := config.Load()
	rootCmd.SetVersionTemplate(version.GetVersionInfo() + "\n")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfg.Reminder.Enabled && os.Getenv("WIRD_NO_REMINDER") != "1" {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			go func() {
				schedule.RunConfigured(ctx, cfg, func() {
					e := haptics.Detect(true)
					e.MilestoneThump()
				})
			}()
			_ = cancel // signal delivery cancels on process exit
		}
		return nil
	}

	rootCmd.AddCommand(todayCmd, countCmd, focusCmd, resetCmd, favCmd,
		summaryCmd, backupCmd, syncCmd, openCmd, showCmd, setCmd)
}

// app bundles everything a command needs: config, the kv store, the progress
// store and (lazily) the catalogs fetched through the offline cache. It
// replaces the original's module-level mutable App object.
type app struct {
	cfg    config.Config
	kv     *store.Store
	ps     *progress.Store
	cache  *offline.Cache
	cat    catalog.Catalog
	strs   catalog.Strings
	engine haptics.Engine
	lang   string
}

func cacheRoot(cfg config.Config) string {
	if cfg.CacheDir != "" {
		return cfg.CacheDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wird-cache")
	}
	return filepath.Join(home, ".cache", "wird")
}

func openApp(withCatalog bool) (*app, error) {
	cfg, _ := config.Load()
	kv, err := store.Open()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:  cfg,
		kv:   kv,
		lang: kv.Lang(),
		strs: catalog.Strings{"en": {}},
	}
	a.engine = haptics.Detect(kv.HapticsEnabled())
	a.ps = progress.New(kv, progress.WithEffects(&cliEffects{app: a}))

	// Opening the app counts as daily activity; a consecutive-day streak
	// survives days where nothing completes.
	if _, err := a.ps.UpdateStreak(); err != nil {
		kv.Close()
		return nil, err
	}

	a.cache, err = offline.New(cfg.SourceURL, cacheRoot(cfg), version.CacheGeneration())
	if err != nil {
		kv.Close()
		return nil, err
	}

	if withCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		a.cat = catalog.Load(ctx, a.cache)
		a.strs = catalog.LoadStrings(ctx, a.cache)
		if !a.strs.Has(a.lang) {
			a.lang = "en"
			_ = kv.SetLang("en")
		}
	}
	return a, nil
}

func (a *app) Close() { _ = a.kv.Close() }

// T resolves a translated UI string for the active language.
func (a *app) T(key, fallback string) string {
	return a.strs.T(a.lang, key, fallback)
}

// categoryItems filters the catalog the way the card list does, respecting
// kids mode and the favorites pseudo-category.
func (a *app) categoryItems(category string) []catalog.Item {
	return a.cat.Filter(catalog.FilterOptions{
		Category:  category,
		KidsMode:  a.kv.KidsMode(),
		Favorites: a.ps.Favorites(),
	})
}

// resolveCategory prefers a valid explicit category and otherwise picks the
// time-of-day default; invalid input is ignored, not an error.
func resolveCategory(flag string) string {
	if progress.ValidCategory(flag) {
		return flag
	}
	return progress.DefaultCategory(time.Now())
}

// resolveItemCategory picks the category context for a single item. An
// explicit category must actually contain the item (favorites must have it
// favorited); the time-of-day default falls back to the item's own first
// category. A count must never land under a key no view reads back.
func (a *app) resolveItemCategory(flag string, item catalog.Item) (string, error) {
	if progress.ValidCategory(flag) {
		if flag == progress.CategoryFavorites {
			if a.ps.IsFavorite(item.ID) {
				return flag, nil
			}
			return "", fmt.Errorf("%s is not in favorites", item.ID)
		}
		if !item.InCategory(flag) {
			return "", fmt.Errorf("%s is not in the %s category", item.ID, flag)
		}
		return flag, nil
	}
	category := progress.DefaultCategory(time.Now())
	if !item.InCategory(category) && len(item.Category) > 0 {
		category = item.Category[0]
	}
	return category, nil
}
