// Package progress owns per-day recitation state: which items are finished,
// per-item counters, and per-category done flags. It is the only writer of
// the persisted day blob; every mutation reads the full current value,
// applies one change and writes the whole value back.
package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openwaqf/wird/internal/catalog"
	"github.com/openwaqf/wird/internal/store"
)

const (
	CategoryMorning   = "morning"
	CategoryEvening   = "evening"
	CategoryWaking    = "waking"
	CategorySleep     = "sleep"
	CategoryFavorites = "favorites"
)

// MainCategories are the four daily slots that count toward the all-done
// reward; favorites is a virtual category and never "completes".
var MainCategories = []string{CategoryMorning, CategoryEvening, CategoryWaking, CategorySleep}

// AllCategories includes the favorites pseudo-category.
var AllCategories = []string{CategoryFavorites, CategoryMorning, CategoryEvening, CategoryWaking, CategorySleep}

func ValidCategory(s string) bool {
	for _, c := range AllCategories {
		if c == s {
			return true
		}
	}
	return false
}

// DefaultCategory picks the daily slot by local hour.
func DefaultCategory(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour >= 18 || hour < 4:
		return CategorySleep
	case hour >= 12:
		return CategoryEvening
	default:
		return CategoryMorning
	}
}

// DayKey derives the storage key from the local calendar date. No timezone
// normalization: progress rolls over at local midnight.
func DayKey(t time.Time) string {
	return fmt.Sprintf("wird_data_%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// StorageKey identifies one item's progress within one category.
func StorageKey(category, itemID string) string {
	return category + "_" + itemID
}

// DayState is one calendar day's progress. Unknown fields from older or
// newer blobs survive a read-modify-write cycle untouched.
type DayState struct {
	CompletedIDs   []string
	CategoriesDone map[string]bool
	CardCounts     map[string]int

	extra map[string]json.RawMessage
}

func emptyDayState() DayState {
	return DayState{
		CompletedIDs:   []string{},
		CategoriesDone: map[string]bool{},
		CardCounts:     map[string]int{},
	}
}

func (d *DayState) UnmarshalJSON(data []byte) error {
	*d = emptyDayState()
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		switch key {
		case "completedIds":
			if err := json.Unmarshal(val, &d.CompletedIDs); err != nil {
				return err
			}
		case "categoriesDone":
			if err := json.Unmarshal(val, &d.CategoriesDone); err != nil {
				return err
			}
		case "cardCounts":
			if err := json.Unmarshal(val, &d.CardCounts); err != nil {
				return err
			}
		default:
			if d.extra == nil {
				d.extra = map[string]json.RawMessage{}
			}
			d.extra[key] = val
		}
	}
	if d.CompletedIDs == nil {
		d.CompletedIDs = []string{}
	}
	if d.CategoriesDone == nil {
		d.CategoriesDone = map[string]bool{}
	}
	if d.CardCounts == nil {
		d.CardCounts = map[string]int{}
	}
	return nil
}

func (d DayState) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extra)+3)
	for k, v := range d.extra {
		out[k] = v
	}
	var err error
	if out["completedIds"], err = json.Marshal(d.CompletedIDs); err != nil {
		return nil, err
	}
	if out["categoriesDone"], err = json.Marshal(d.CategoriesDone); err != nil {
		return nil, err
	}
	if out["cardCounts"], err = json.Marshal(d.CardCounts); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (d DayState) Completed(category, itemID string) bool {
	key := StorageKey(category, itemID)
	for _, id := range d.CompletedIDs {
		if id == key {
			return true
		}
	}
	return false
}

func (d DayState) Count(category, itemID string) int {
	return d.CardCounts[StorageKey(category, itemID)]
}

// AllMainDone reports whether every main category carries the done flag.
func (d DayState) AllMainDone() bool {
	for _, cat := range MainCategories {
		if !d.CategoriesDone[cat] {
			return false
		}
	}
	return true
}

// Store is the single source of truth for day progress.
type Store struct {
	kv      *store.Store
	now     func() time.Time
	effects Effects
}

type Option func(*Store)

// WithClock overrides the wall clock, used by tests to pin the day key.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEffects attaches the presentation adapter receiving reward signals.
func WithEffects(e Effects) Option {
	return func(s *Store) { s.effects = e }
}

func New(kv *store.Store, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now, effects: NopEffects{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) todayKey() string { return DayKey(s.now()) }

// DayState returns today's state. Absent or corrupt stored data yields the
// default empty shape; this never fails.
func (s *Store) DayState() DayState {
	raw, ok, err := s.kv.Get(s.todayKey())
	if err != nil || !ok {
		return emptyDayState()
	}
	var st DayState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return emptyDayState()
	}
	return st
}

func (s *Store) saveState(st DayState) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.kv.Put(s.todayKey(), string(blob))
}

// ImportState overwrites today's blob wholesale (backup restore path).
func (s *Store) ImportState(st DayState) error { return s.saveState(st) }

// SetCounter writes the raw counter value. Bounds are the caller's problem;
// the counting state machine never passes a value outside [0, repeat].
func (s *Store) SetCounter(category, itemID string, value int) error {
	st := s.DayState()
	st.CardCounts[StorageKey(category, itemID)] = value
	return s.saveState(st)
}

// MarkComplete adds the item to the completed set. Idempotent.
func (s *Store) MarkComplete(category, itemID string) error {
	st := s.DayState()
	key := StorageKey(category, itemID)
	for _, id := range st.CompletedIDs {
		if id == key {
			return s.saveState(st)
		}
	}
	st.CompletedIDs = append(st.CompletedIDs, key)
	return s.saveState(st)
}

// ResetItem clears one item's completion and counter. Completion is not
// monotonic: if the category was marked done it regresses, and a previously
// sticky all-done signal clears.
func (s *Store) ResetItem(category, itemID string) error {
	st := s.DayState()
	wasAllDone := st.AllMainDone()
	key := StorageKey(category, itemID)
	st.CompletedIDs = without(st.CompletedIDs, key)
	delete(st.CardCounts, key)
	if st.CategoriesDone[category] {
		delete(st.CategoriesDone, category)
	}
	if err := s.saveState(st); err != nil {
		return err
	}
	if wasAllDone && !st.AllMainDone() {
		s.effects.AllDoneCleared()
	}
	return nil
}

// ResetCategory bulk-resets every given item plus the category-done flag.
// Callers confirm with the user before invoking; for favorites they pass the
// favorited items.
func (s *Store) ResetCategory(category string, items []catalog.Item) error {
	st := s.DayState()
	wasAllDone := st.AllMainDone()
	for _, it := range items {
		key := StorageKey(category, it.ID)
		st.CompletedIDs = without(st.CompletedIDs, key)
		delete(st.CardCounts, key)
	}
	delete(st.CategoriesDone, category)
	if err := s.saveState(st); err != nil {
		return err
	}
	if wasAllDone && !st.AllMainDone() {
		s.effects.AllDoneCleared()
	}
	return nil
}

// MarkCategoryComplete sets the done flag and evaluates the reward tier:
// all four main categories done is the sticky all-done signal, anything less
// is a transient single-category pulse. Favorites never completes. The flag
// is set even if already true so dependent presentation refreshes.
func (s *Store) MarkCategoryComplete(category string) error {
	if category == CategoryFavorites {
		return nil
	}
	st := s.DayState()
	st.CategoriesDone[category] = true
	if err := s.saveState(st); err != nil {
		return err
	}
	if st.AllMainDone() {
		s.effects.AllDone()
	} else {
		s.effects.CategoryPulse(category)
	}
	if _, err := s.UpdateStreak(); err != nil {
		return err
	}
	return nil
}

// CheckCategoryCompletion marks the category done when every listed item has
// a completed entry. Run after every per-item completion and reset.
func (s *Store) CheckCategoryCompletion(category string, items []catalog.Item) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}
	st := s.DayState()
	completed := 0
	for _, it := range items {
		if st.Completed(category, it.ID) {
			completed++
		}
	}
	if completed >= len(items) {
		return true, s.MarkCategoryComplete(category)
	}
	return false, nil
}

func without(ids []string, key string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != key {
			out = append(out, id)
		}
	}
	return out
}
