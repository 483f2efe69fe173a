package progress

import (
	"strconv"

	"github.com/openwaqf/wird/internal/store"
)

// streak dates use a coarse human-readable day stamp, distinct from the
// progress day key, because the backup format carries them verbatim.
const streakDateLayout = "Mon Jan 02 2006"

// Streak returns the current streak without touching it.
func (s *Store) Streak() int {
	raw, ok, err := s.kv.Get(store.KeyStreak)
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// UpdateStreak bumps the consecutive-day streak at most once per calendar
// day: +1 when the last active day was yesterday, reset to 1 otherwise.
func (s *Store) UpdateStreak() (int, error) {
	now := s.now()
	todayStr := now.Format(streakDateLayout)

	lastStr, _, err := s.kv.Get(store.KeyLastActive)
	if err != nil {
		return 0, err
	}
	current := s.Streak()
	if lastStr == todayStr {
		return current, nil
	}

	yesterdayStr := now.AddDate(0, 0, -1).Format(streakDateLayout)
	if lastStr == yesterdayStr {
		current++
	} else {
		current = 1
	}
	if err := s.kv.Put(store.KeyStreak, strconv.Itoa(current)); err != nil {
		return 0, err
	}
	if err := s.kv.Put(store.KeyLastActive, todayStr); err != nil {
		return 0, err
	}
	return current, nil
}
