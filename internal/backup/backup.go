// Package backup writes and restores the portable snapshot: today's
// progress blob, the favorites list and the preference flags, tagged with a
// fixed marker so arbitrary JSON can't be imported by accident.
package backup

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/openwaqf/wird/internal/progress"
	"github.com/openwaqf/wird/internal/store"
)

// Marker is the literal tag every backup document must carry.
const Marker = "wird_backup"

// ErrInvalidBackup covers both unparsable files and wrong markers; imports
// abort without touching existing state.
var ErrInvalidBackup = errors.New("backup: not a wird backup file")

type Settings struct {
	Lang       string `json:"lang,omitempty"`
	DarkMode   string `json:"darkMode,omitempty"`
	OledMode   string `json:"oledMode,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
	Streak     string `json:"streak,omitempty"`
	LastActive string `json:"lastActive,omitempty"`
}

type Document struct {
	Key       string            `json:"key"`
	Date      string            `json:"date"`
	State     progress.DayState `json:"state"`
	Favorites []string          `json:"favorites"`
	Settings  Settings          `json:"settings"`
}

func getOr(kv *store.Store, key string) string {
	v, _, _ := kv.Get(key)
	return v
}

// Export snapshots the current day state, favorites and settings.
func Export(ps *progress.Store, kv *store.Store, now time.Time) ([]byte, error) {
	doc := Document{
		Key:       Marker,
		Date:      now.UTC().Format(time.RFC3339),
		State:     ps.DayState(),
		Favorites: ps.Favorites(),
		Settings: Settings{
			Lang:       getOr(kv, store.KeyLang),
			DarkMode:   getOr(kv, store.KeyDarkMode),
			OledMode:   getOr(kv, store.KeyOledMode),
			FontSize:   getOr(kv, store.KeyFontScale),
			Streak:     getOr(kv, store.KeyStreak),
			LastActive: getOr(kv, store.KeyLastActive),
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import validates and applies a backup document. Validation happens before
// any write, so a rejected import leaves state untouched; there is no
// partial apply.
func Import(data []byte, ps *progress.Store, kv *store.Store) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ErrInvalidBackup
	}
	if doc.Key != Marker {
		return ErrInvalidBackup
	}

	if err := ps.ImportState(doc.State); err != nil {
		return err
	}
	if doc.Favorites != nil {
		if err := ps.SaveFavorites(doc.Favorites); err != nil {
			return err
		}
	}
	pairs := map[string]string{
		store.KeyLang:       doc.Settings.Lang,
		store.KeyDarkMode:   doc.Settings.DarkMode,
		store.KeyOledMode:   doc.Settings.OledMode,
		store.KeyFontScale:  doc.Settings.FontSize,
		store.KeyStreak:     doc.Settings.Streak,
		store.KeyLastActive: doc.Settings.LastActive,
	}
	for key, val := range pairs {
		if val == "" {
			continue
		}
		if err := kv.Put(key, val); err != nil {
			return err
		}
	}
	return nil
}

// FileName suggests the export file name for a given day.
func FileName(now time.Time) string {
	return "wird-backup-" + now.UTC().Format("2006-01-02") + ".json"
}
