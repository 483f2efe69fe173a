package catalog

import (
	"context"
	"encoding/json"
)

// Strings maps language code to string key to display text. The raw file's
// "default" language is merged under every concrete language as fallback.
type Strings map[string]map[string]string

// LoadStrings fetches and decodes strings.json; failure degrades to an empty
// English set.
func LoadStrings(ctx context.Context, f Fetcher) Strings {
	empty := Strings{"en": {}}
	raw, err := f.Fetch(ctx, "strings.json")
	if err != nil {
		return empty
	}
	var decoded map[string]map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return empty
	}

	defaults := decoded["default"]
	out := Strings{}
	for lang, table := range decoded {
		if lang == "default" {
			continue
		}
		merged := make(map[string]string, len(defaults)+len(table))
		for k, v := range defaults {
			merged[k] = v
		}
		for k, v := range table {
			merged[k] = v
		}
		out[lang] = merged
	}
	if len(out) == 0 {
		return empty
	}
	return out
}

// Has reports whether the language has any string table at all.
func (s Strings) Has(lang string) bool {
	_, ok := s[lang]
	return ok
}

// T resolves a key for lang, falling back to English and then to fallback.
func (s Strings) T(lang, key, fallback string) string {
	if table, ok := s[lang]; ok {
		if v, ok := table[key]; ok && v != "" {
			return v
		}
	}
	if table, ok := s["en"]; ok {
		if v, ok := table[key]; ok && v != "" {
			return v
		}
	}
	return fallback
}
