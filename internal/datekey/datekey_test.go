package datekey_test

import (
	"testing"
	"time"

	"planner/internal/datekey"

	"github.com/stretchr/testify/assert"
)

func TestFromTime_ZeroPadded(t *testing.T) {
	d := time.Date(2024, time.June, 5, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2024-06-05", datekey.FromTime(d))
}

func TestFromTime_UsesLocalFields(t *testing.T) {
	// 23:30 local on the 15th must key to the 15th even when the UTC
	// instant already falls on the next day.
	loc := time.FixedZone("UTC-5", -5*60*60)
	d := time.Date(2024, time.June, 15, 23, 30, 0, 0, loc)

	y, m, day := d.Date()
	assert.Equal(t, "2024-06-15", datekey.FromDate(y, m, day))
	assert.Equal(t, "2024-06-16", d.UTC().Format(datekey.Layout))
}

func TestParse_Valid(t *testing.T) {
	got, err := datekey.Parse("2024-06-15")
	assert.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 15, got.Day())
}

func TestParse_Invalid(t *testing.T) {
	for _, key := range []string{"", "2024-6-15", "15-06-2024", "2024-13-01", "2024-06-15T00:00:00Z", "not-a-date"} {
		_, err := datekey.Parse(key)
		assert.Error(t, err, "key %q", key)
		assert.False(t, datekey.IsValid(key))
	}
}

func TestAddDays_MonthBoundary(t *testing.T) {
	assert.Equal(t, "2024-07-01", datekey.AddDays("2024-06-30", 1))
	assert.Equal(t, "2024-02-29", datekey.AddDays("2024-03-01", -1))
	assert.Equal(t, "2025-01-01", datekey.AddDays("2024-12-31", 1))
}

func TestMonthRange(t *testing.T) {
	from, to, err := datekey.MonthRange("2024-02-10")
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)

	_, _, err = datekey.MonthRange("bogus")
	assert.Error(t, err)
}
