package store

import (
	"os"
	"strings"
)

// Preference keys, kept stable because the backup format carries them.
const (
	KeyLang       = "userLang"
	KeyDarkMode   = "darkMode"
	KeyOledMode   = "oledMode"
	KeyFontScale  = "fontScale"
	KeyKidsMode   = "isKidsMode"
	KeyHaptics    = "isHapticEnabled"
	KeyDetails    = "showDetails"
	KeyFavorites  = "wird_favorites"
	KeyStreak     = "wird_streak"
	KeyLastActive = "wird_last_active_date"
)

var supportedLangs = map[string]bool{
	"en": true, "ar": true, "fr": true, "it": true, "es": true,
}

func SupportedLang(lang string) bool { return supportedLangs[lang] }

func detectSystemLang() string {
	raw := strings.ToLower(os.Getenv("LANG"))
	primary := raw
	if i := strings.IndexAny(raw, "_.-"); i > 0 {
		primary = raw[:i]
	}
	if supportedLangs[primary] {
		return primary
	}
	return "en"
}

// Lang returns the persisted UI language, detecting and persisting one from
// the environment on first run.
func (s *Store) Lang() string {
	v, ok, err := s.Get(KeyLang)
	if err == nil && ok && supportedLangs[v] {
		return v
	}
	if !ok {
		detected := detectSystemLang()
		_ = s.Put(KeyLang, detected)
		return detected
	}
	_ = s.Put(KeyLang, "en")
	return "en"
}

func (s *Store) SetLang(lang string) error { return s.Put(KeyLang, lang) }

// Flag reads a boolean preference; absent or unreadable keys fall back to def.
func (s *Store) Flag(key string, def bool) bool {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return def
	}
	return v == "true"
}

func (s *Store) SetFlag(key string, on bool) error {
	if on {
		return s.Put(key, "true")
	}
	return s.Put(key, "false")
}

func (s *Store) KidsMode() bool       { return s.Flag(KeyKidsMode, false) }
func (s *Store) HapticsEnabled() bool { return s.Flag(KeyHaptics, true) }
func (s *Store) ShowDetails() bool    { return s.Flag(KeyDetails, false) }

// FontScale is stored as the raw slider value string ("1", "1.2", ...).
func (s *Store) FontScale() string {
	v, ok, err := s.Get(KeyFontScale)
	if err != nil || !ok || v == "" {
		return "1"
	}
	return v
}
