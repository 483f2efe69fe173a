package progress

import (
	"encoding/json"

	"github.com/openwaqf/wird/internal/store"
)

// Favorites returns the ordered favorites list. Corrupt or absent data
// reads as empty.
func (s *Store) Favorites() []string {
	raw, ok, err := s.kv.Get(store.KeyFavorites)
	if err != nil || !ok {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || ids == nil {
		return []string{}
	}
	return ids
}

func (s *Store) IsFavorite(itemID string) bool {
	for _, id := range s.Favorites() {
		if id == itemID {
			return true
		}
	}
	return false
}

// ToggleFavorite adds or removes the id, preserving insertion order, and
// reports whether the item is a favorite afterwards.
func (s *Store) ToggleFavorite(itemID string) (bool, error) {
	ids := s.Favorites()
	kept := ids[:0]
	removed := false
	for _, id := range ids {
		if id == itemID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, itemID)
	}
	if err := s.SaveFavorites(kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// SaveFavorites replaces the whole list (backup restore path).
func (s *Store) SaveFavorites(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	blob, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Put(store.KeyFavorites, string(blob))
}
