package progress

import "github.com/openwaqf/wird/internal/catalog"

// Counter is the counting state machine shared by the inline card view and
// focus mode; both read and write the same day-state entry, so they can
// never drift apart numerically.
type Counter struct {
	Category string
	ItemID   string
	Current  int
	Target   int
}

// CounterFor builds the counter from persisted state. A completed item
// always reads at its target even if the raw count entry is missing.
func (s *Store) CounterFor(category string, item catalog.Item) Counter {
	st := s.DayState()
	current := st.Count(category, item.ID)
	if st.Completed(category, item.ID) {
		current = item.Repeat
	}
	return Counter{
		Category: category,
		ItemID:   item.ID,
		Current:  current,
		Target:   item.Repeat,
	}
}

// Done reports whether the counter reached its target.
func (c Counter) Done() bool { return c.Current >= c.Target }

// Percent is the unclamped progress percentage; the no-op-past-target rule
// keeps it from ever exceeding 100.
func (c Counter) Percent() float64 {
	if c.Target == 0 {
		return 0
	}
	return float64(c.Current) / float64(c.Target) * 100
}

// Increment advances the counter by one. Past the target it is a rejected
// no-op; counters never exceed the target and never decrement except via
// reset. Every increment persists immediately; reaching the target marks
// the item complete and runs the category completion check against
// categoryItems (skipped for favorites, which has no fixed target set).
func (s *Store) Increment(c *Counter, categoryItems []catalog.Item) (bool, error) {
	if c.Done() {
		return false, nil
	}
	c.Current++
	if err := s.SetCounter(c.Category, c.ItemID, c.Current); err != nil {
		return false, err
	}
	if !c.Done() {
		return false, nil
	}
	if err := s.MarkComplete(c.Category, c.ItemID); err != nil {
		return true, err
	}
	if c.Category != CategoryFavorites {
		if _, err := s.CheckCategoryCompletion(c.Category, categoryItems); err != nil {
			return true, err
		}
	}
	return true, nil
}
