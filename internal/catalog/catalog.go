// Package catalog loads the static adhkar catalog and UI string tables.
// Both degrade to empty on fetch or parse failure; a missing catalog renders
// nothing but never crashes the app.
package catalog

import (
	"context"
	"encoding/json"
)

// Fetcher is the read path into the offline cache layer.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// CategoryList accepts either a single category string or a list; an item
// may belong to several daily slots.
type CategoryList []string

func (c *CategoryList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*c = CategoryList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = CategoryList(many)
	return nil
}

func (c CategoryList) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

type Item struct {
	ID              string            `json:"id"`
	Category        CategoryList      `json:"category"`
	Repeat          int               `json:"repeat"`
	IsKids          bool              `json:"is_kids"`
	Arabic          string            `json:"arabic"`
	Transliteration string            `json:"transliteration"`
	Translation     map[string]string `json:"translation"`
	Reference       string            `json:"reference"`
	PreText         string            `json:"pre_text,omitempty"`
	VerifyURL       string            `json:"verify_url,omitempty"`
}

func (i Item) InCategory(category string) bool {
	for _, c := range i.Category {
		if c == category {
			return true
		}
	}
	return false
}

// TranslationFor falls back to English when the requested language is absent.
func (i Item) TranslationFor(lang string) string {
	if t, ok := i.Translation[lang]; ok && t != "" {
		return t
	}
	return i.Translation["en"]
}

type Catalog struct {
	Items []Item
}

// Load fetches and decodes data.json. Any failure yields an empty catalog.
func Load(ctx context.Context, f Fetcher) Catalog {
	raw, err := f.Fetch(ctx, "data.json")
	if err != nil {
		return Catalog{}
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return Catalog{}
	}
	return Catalog{Items: items}
}

func (c Catalog) Find(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// FilterOptions narrows the catalog the way the card list does: category
// membership (or favorites), with kids-mode hiding non-kids items.
type FilterOptions struct {
	Category  string
	KidsMode  bool
	Favorites []string
}

func (c Catalog) Filter(opts FilterOptions) []Item {
	var out []Item
	if opts.Category == "favorites" {
		fav := make(map[string]bool, len(opts.Favorites))
		for _, id := range opts.Favorites {
			fav[id] = true
		}
		for _, it := range c.Items {
			if fav[it.ID] {
				out = append(out, it)
			}
		}
		return out
	}
	for _, it := range c.Items {
		if !it.InCategory(opts.Category) {
			continue
		}
		if opts.KidsMode && !it.IsKids {
			continue
		}
		out = append(out, it)
	}
	return out
}
