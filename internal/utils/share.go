package utils

import (
	"net/url"
	"strings"

	"github.com/openwaqf/wird/internal/catalog"
)

const fallbackProjectURL = "https://wird.open-waqf.org/"

// ProjectURL resolves the public site URL from the string catalog.
func ProjectURL(strs catalog.Strings, lang string) string {
	return strings.TrimRight(strs.T(lang, "website", fallbackProjectURL), "/")
}

func BuildShareURL(projectURL string, item catalog.Item) string {
	return projectURL + "/?adhkar=" + url.QueryEscape(item.ID)
}

func BuildVerifyURL(projectURL string, item catalog.Item) string {
	return projectURL + "/?verify=" + url.QueryEscape(item.ID)
}

// BuildShareText composes arabic, transliteration, translation and the share
// link, blank-line separated.
func BuildShareText(item catalog.Item, lang, projectURL string) string {
	var parts []string
	if item.Arabic != "" {
		parts = append(parts, item.Arabic)
	}
	if item.Transliteration != "" {
		parts = append(parts, item.Transliteration)
	}
	if t := item.TranslationFor(lang); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, BuildShareURL(projectURL, item))
	return strings.Join(parts, "\n\n")
}

// BuildCopyText is the clipboard composition: arabic only for Arabic UI,
// otherwise arabic plus transliteration and translation.
func BuildCopyText(item catalog.Item, lang string) string {
	text := item.Arabic
	if lang != "ar" {
		if item.Transliteration != "" {
			text += "\n\n" + item.Transliteration
		}
		if t := item.TranslationFor(lang); t != "" {
			text += "\n\n" + t
		}
	}
	return text
}
