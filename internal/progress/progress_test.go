package progress

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/openwaqf/wird/internal/catalog"
	"github.com/openwaqf/wird/internal/store"
)

type effectsRecorder struct {
	pulses  []string
	allDone int
	cleared int
}

func (r *effectsRecorder) CategoryPulse(cat string) { r.pulses = append(r.pulses, cat) }
func (r *effectsRecorder) AllDone()                 { r.allDone++ }
func (r *effectsRecorder) AllDoneCleared()          { r.cleared++ }

func newTestStore(t *testing.T) (*Store, *store.Store, *effectsRecorder, *time.Time) {
	t.Helper()
	kv, err := store.OpenAt(filepath.Join(t.TempDir(), "wird.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	rec := &effectsRecorder{}
	s := New(kv, WithClock(func() time.Time { return now }), WithEffects(rec))
	return s, kv, rec, &now
}

func item(id string, repeat int, cats ...string) catalog.Item {
	return catalog.Item{ID: id, Repeat: repeat, Category: catalog.CategoryList(cats)}
}

func TestDayKeyHasNoZeroPadding(t *testing.T) {
	d := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	if got := DayKey(d); got != "wird_data_2026-3-7" {
		t.Fatalf("day key = %q", got)
	}
}

func TestDefaultCategoryByHour(t *testing.T) {
	cases := map[int]string{
		0: CategorySleep, 3: CategorySleep, 4: CategoryMorning,
		11: CategoryMorning, 12: CategoryEvening, 17: CategoryEvening,
		18: CategorySleep, 23: CategorySleep,
	}
	for hour, want := range cases {
		at := time.Date(2026, 8, 29, hour, 0, 0, 0, time.UTC)
		if got := DefaultCategory(at); got != want {
			t.Errorf("hour %d: got %s, want %s", hour, got, want)
		}
	}
}

func TestCounterMonotonicBoundedAndCompleting(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	it := item("ayat-kursi", 3, CategoryMorning)
	items := []catalog.Item{it}

	c := s.CounterFor(CategoryMorning, it)
	if c.Current != 0 || c.Target != 3 {
		t.Fatalf("fresh counter = %+v", c)
	}

	var values []int
	for i := 0; i < 5; i++ {
		if _, err := s.Increment(&c, items); err != nil {
			t.Fatalf("increment: %v", err)
		}
		values = append(values, c.Current)
	}
	if !reflect.DeepEqual(values, []int{1, 2, 3, 3, 3}) {
		t.Fatalf("counter sequence = %v", values)
	}

	st := s.DayState()
	if !st.Completed(CategoryMorning, "ayat-kursi") {
		t.Fatal("item not marked complete at target")
	}
	if st.Count(CategoryMorning, "ayat-kursi") != 3 {
		t.Fatalf("persisted count = %d", st.Count(CategoryMorning, "ayat-kursi"))
	}
	if !st.CategoriesDone[CategoryMorning] {
		t.Fatal("single-item category should be done after completion check")
	}
	if c.Percent() != 100 {
		t.Fatalf("percent = %v", c.Percent())
	}
}

func TestMarkCompleteIdempotent(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	if err := s.MarkComplete(CategoryEvening, "x"); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkComplete(CategoryEvening, "x"); err != nil {
		t.Fatal(err)
	}
	st := s.DayState()
	if len(st.CompletedIDs) != 1 || st.CompletedIDs[0] != "evening_x" {
		t.Fatalf("completedIds = %v", st.CompletedIDs)
	}
}

func TestCheckCategoryCompletionIffAllItemsDone(t *testing.T) {
	s, _, rec, _ := newTestStore(t)
	a, b := item("a", 1, CategoryMorning), item("b", 1, CategoryMorning)
	items := []catalog.Item{a, b}

	if err := s.MarkComplete(CategoryMorning, "a"); err != nil {
		t.Fatal(err)
	}
	done, err := s.CheckCategoryCompletion(CategoryMorning, items)
	if err != nil || done {
		t.Fatalf("half-complete category marked done (done=%v err=%v)", done, err)
	}
	if s.DayState().CategoriesDone[CategoryMorning] {
		t.Fatal("done flag set early")
	}

	if err := s.MarkComplete(CategoryMorning, "b"); err != nil {
		t.Fatal(err)
	}
	done, err = s.CheckCategoryCompletion(CategoryMorning, items)
	if err != nil || !done {
		t.Fatalf("complete category not marked (done=%v err=%v)", done, err)
	}
	if !s.DayState().CategoriesDone[CategoryMorning] {
		t.Fatal("done flag missing")
	}
	if len(rec.pulses) != 1 || rec.pulses[0] != CategoryMorning {
		t.Fatalf("pulses = %v", rec.pulses)
	}

	// empty item list can never complete
	done, err = s.CheckCategoryCompletion(CategoryWaking, nil)
	if err != nil || done {
		t.Fatal("empty category completed")
	}
}

func TestFavoritesCategoryNeverCompletes(t *testing.T) {
	s, _, rec, _ := newTestStore(t)
	if err := s.MarkCategoryComplete(CategoryFavorites); err != nil {
		t.Fatal(err)
	}
	if len(s.DayState().CategoriesDone) != 0 {
		t.Fatal("favorites got a done flag")
	}
	if len(rec.pulses) != 0 || rec.allDone != 0 {
		t.Fatal("favorites fired reward effects")
	}
}

func TestRewardTierTransientThenSticky(t *testing.T) {
	s, _, rec, _ := newTestStore(t)

	for i, cat := range []string{CategoryMorning, CategoryEvening, CategoryWaking} {
		if err := s.MarkCategoryComplete(cat); err != nil {
			t.Fatal(err)
		}
		if len(rec.pulses) != i+1 {
			t.Fatalf("after %s: pulses = %v", cat, rec.pulses)
		}
	}
	if rec.allDone != 0 {
		t.Fatal("all-done fired before all four categories")
	}

	if err := s.MarkCategoryComplete(CategorySleep); err != nil {
		t.Fatal(err)
	}
	if rec.allDone != 1 {
		t.Fatalf("allDone = %d", rec.allDone)
	}
	if len(rec.pulses) != 3 {
		t.Fatalf("final completion also pulsed: %v", rec.pulses)
	}
	if !s.DayState().AllMainDone() {
		t.Fatal("state does not derive all-done")
	}

	// re-marking an already done category re-fires the sticky signal
	if err := s.MarkCategoryComplete(CategoryMorning); err != nil {
		t.Fatal(err)
	}
	if rec.allDone != 2 {
		t.Fatalf("re-mark did not re-signal, allDone = %d", rec.allDone)
	}
}

func TestResetItemClearsCategoryAndAllDone(t *testing.T) {
	s, _, rec, _ := newTestStore(t)
	for _, cat := range MainCategories {
		if err := s.MarkCategoryComplete(cat); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SetCounter(CategoryMorning, "a", 3); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkComplete(CategoryMorning, "a"); err != nil {
		t.Fatal(err)
	}

	if err := s.ResetItem(CategoryMorning, "a"); err != nil {
		t.Fatal(err)
	}
	st := s.DayState()
	if st.Completed(CategoryMorning, "a") {
		t.Fatal("completed flag survived reset")
	}
	if _, ok := st.CardCounts["morning_a"]; ok {
		t.Fatal("counter survived reset")
	}
	if st.CategoriesDone[CategoryMorning] {
		t.Fatal("category done flag survived reset")
	}
	if st.AllMainDone() {
		t.Fatal("all-done derivation survived reset")
	}
	if rec.cleared != 1 {
		t.Fatalf("cleared = %d", rec.cleared)
	}
}

func TestResetCategoryScenario(t *testing.T) {
	s, _, rec, _ := newTestStore(t)
	items := []catalog.Item{item("a", 3, CategoryMorning), item("b", 7, CategoryMorning)}

	for _, it := range items {
		c := s.CounterFor(CategoryMorning, it)
		for !c.Done() {
			if _, err := s.Increment(&c, items); err != nil {
				t.Fatal(err)
			}
		}
	}
	for _, cat := range []string{CategoryEvening, CategoryWaking, CategorySleep} {
		if err := s.MarkCategoryComplete(cat); err != nil {
			t.Fatal(err)
		}
	}
	if !s.DayState().AllMainDone() {
		t.Fatal("setup: not all done")
	}

	if err := s.ResetCategory(CategoryMorning, items); err != nil {
		t.Fatal(err)
	}
	st := s.DayState()
	for _, it := range items {
		if st.Count(CategoryMorning, it.ID) != 0 {
			t.Fatalf("%s counter = %d", it.ID, st.Count(CategoryMorning, it.ID))
		}
		if st.Completed(CategoryMorning, it.ID) {
			t.Fatalf("%s still completed", it.ID)
		}
	}
	if _, ok := st.CategoriesDone[CategoryMorning]; ok {
		t.Fatal("categoriesDone.morning still present")
	}
	if st.AllMainDone() {
		t.Fatal("all-done still derives true")
	}
	if rec.cleared != 1 {
		t.Fatalf("cleared = %d", rec.cleared)
	}
}

func TestDayStateCorruptBlobYieldsDefaults(t *testing.T) {
	s, kv, _, now := newTestStore(t)
	if err := kv.Put(DayKey(*now), "{not json"); err != nil {
		t.Fatal(err)
	}
	st := s.DayState()
	if len(st.CompletedIDs) != 0 || len(st.CategoriesDone) != 0 || len(st.CardCounts) != 0 {
		t.Fatalf("corrupt blob did not fall back to defaults: %+v", st)
	}
	// and the next write replaces it wholesale
	if err := s.SetCounter(CategoryMorning, "a", 1); err != nil {
		t.Fatal(err)
	}
	if s.DayState().Count(CategoryMorning, "a") != 1 {
		t.Fatal("write after corruption lost")
	}
}

func TestDayStatePreservesUnknownFields(t *testing.T) {
	s, kv, _, now := newTestStore(t)
	seed := `{"completedIds":["morning_a"],"futureField":{"x":1}}`
	if err := kv.Put(DayKey(*now), seed); err != nil {
		t.Fatal(err)
	}

	if err := s.SetCounter(CategoryMorning, "a", 2); err != nil {
		t.Fatal(err)
	}

	raw, ok, err := kv.Get(DayKey(*now))
	if err != nil || !ok {
		t.Fatalf("read back: ok=%v err=%v", ok, err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["futureField"]; !ok {
		t.Fatalf("unknown field dropped: %s", raw)
	}
	if !strings.Contains(string(decoded["completedIds"]), "morning_a") {
		t.Fatalf("known field lost: %s", raw)
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	s, _, _, now := newTestStore(t)

	got, err := s.UpdateStreak()
	if err != nil || got != 1 {
		t.Fatalf("first day: streak=%d err=%v", got, err)
	}
	// same day: no change
	got, err = s.UpdateStreak()
	if err != nil || got != 1 {
		t.Fatalf("same day: streak=%d err=%v", got, err)
	}

	*now = now.AddDate(0, 0, 1)
	got, err = s.UpdateStreak()
	if err != nil || got != 2 {
		t.Fatalf("next day: streak=%d err=%v", got, err)
	}

	*now = now.AddDate(0, 0, 3)
	got, err = s.UpdateStreak()
	if err != nil || got != 1 {
		t.Fatalf("after gap: streak=%d err=%v", got, err)
	}
	if s.Streak() != 1 {
		t.Fatalf("persisted streak = %d", s.Streak())
	}
}

func TestStreakSurvivesOpenOnlyDays(t *testing.T) {
	s, _, _, now := newTestStore(t)

	if err := s.MarkCategoryComplete(CategoryMorning); err != nil {
		t.Fatal(err)
	}
	if s.Streak() != 1 {
		t.Fatalf("day 1 streak = %d", s.Streak())
	}

	// day 2: the app is opened but nothing completes
	*now = now.AddDate(0, 0, 1)
	if got, err := s.UpdateStreak(); err != nil || got != 2 {
		t.Fatalf("open-only day: streak=%d err=%v", got, err)
	}

	// day 3: a completion continues the same streak
	*now = now.AddDate(0, 0, 1)
	if err := s.MarkCategoryComplete(CategoryEvening); err != nil {
		t.Fatal(err)
	}
	if s.Streak() != 3 {
		t.Fatalf("day 3 streak = %d", s.Streak())
	}
}

func TestFavoritesToggleOrderAndDedup(t *testing.T) {
	s, _, _, _ := newTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if on, err := s.ToggleFavorite(id); err != nil || !on {
			t.Fatalf("toggle %s: on=%v err=%v", id, on, err)
		}
	}
	if got := s.Favorites(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("favorites = %v", got)
	}

	if on, err := s.ToggleFavorite("b"); err != nil || on {
		t.Fatalf("untoggle b: on=%v err=%v", on, err)
	}
	if got := s.Favorites(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("favorites after removal = %v", got)
	}

	// re-adding appends at the end
	if _, err := s.ToggleFavorite("b"); err != nil {
		t.Fatal(err)
	}
	if got := s.Favorites(); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Fatalf("favorites after re-add = %v", got)
	}
	if !s.IsFavorite("b") || s.IsFavorite("z") {
		t.Fatal("IsFavorite wrong")
	}
}

func TestStateIsolatedPerDay(t *testing.T) {
	s, _, _, now := newTestStore(t)
	if err := s.SetCounter(CategoryMorning, "a", 2); err != nil {
		t.Fatal(err)
	}
	*now = now.AddDate(0, 0, 1)
	if got := s.DayState().Count(CategoryMorning, "a"); got != 0 {
		t.Fatalf("yesterday's count leaked into today: %d", got)
	}
}
