package datekey

import (
	"fmt"
	"time"
)

// Layout is the canonical day key format: zero-padded YYYY-MM-DD.
const Layout = "2006-01-02"

// FromTime derives a day key from the local calendar fields of t.
// Keys are never derived through UTC conversion, so a task assigned to
// "today" stays on today across timezone boundaries.
func FromTime(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// FromDate builds a key from explicit calendar fields (month is 1-based).
func FromDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// Today returns the key for the current local date.
func Today() string {
	return FromTime(time.Now())
}

// Parse validates key and returns the local midnight it names.
func Parse(key string) (time.Time, error) {
	if len(key) != len(Layout) {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// IsValid reports whether key is a well-formed day key.
func IsValid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// AddDays returns the key n calendar days after key. It panics on an
// invalid key; callers validate input at the boundary.
func AddDays(key string, n int) string {
	t, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return FromTime(t.AddDate(0, 0, n))
}

// MonthRange returns the first and last keys of the month containing key.
func MonthRange(key string) (from, to string, err error) {
	t, err := Parse(key)
	if err != nil {
		return "", "", err
	}
	y, m, _ := t.Date()
	first := FromDate(y, m, 1)
	last := FromTime(time.Date(y, m, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1))
	return first, last, nil
}
