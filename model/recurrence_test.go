package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceFieldMapping(t *testing.T) {
	t.Run("pattern to fields and back", func(t *testing.T) {
		r := Recurrence{Frequency: FreqWeekly, Interval: 2, Weekday: time.Monday}
		f := r.Fields()
		assert.True(t, f.Repeats)
		assert.Equal(t, 2, f.Interval)
		assert.Equal(t, r, RecurrenceFromFields(f))
	})

	t.Run("zero pattern maps to non-repeating", func(t *testing.T) {
		f := Recurrence{}.Fields()
		assert.False(t, f.Repeats)
		assert.Equal(t, FreqNone, f.Frequency)
	})

	t.Run("interval defaults to 1", func(t *testing.T) {
		f := Recurrence{Frequency: FreqDaily}.Fields()
		assert.Equal(t, 1, f.Interval)
		r := RecurrenceFromFields(RecurrenceFields{Repeats: true, Frequency: FreqDaily})
		assert.Equal(t, 1, r.Interval)
	})
}

func TestRecurrenceSummary(t *testing.T) {
	cases := []struct {
		r    Recurrence
		want string
	}{
		{Recurrence{}, "Does not repeat"},
		{Recurrence{Frequency: FreqDaily}, "Every day"},
		{Recurrence{Frequency: FreqDaily, Interval: 3}, "Every 3 days"},
		{Recurrence{Frequency: FreqWeekly, Weekday: time.Monday}, "Every week on Monday"},
		{Recurrence{Frequency: FreqWeekly, Interval: 2, Weekday: time.Friday}, "Every 2 weeks on Friday"},
		{Recurrence{Frequency: FreqMonthly, MonthlyOrdinal: 2, Weekday: time.Tuesday}, "Monthly on the second Tuesday"},
		{Recurrence{Frequency: FreqMonthly, MonthlyOrdinal: -1, Weekday: time.Friday}, "Monthly on the last Friday"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.r.Summary())
	}
}

func TestParseFrequency(t *testing.T) {
	for in, want := range map[string]RecurrenceFrequency{
		"none": FreqNone, "Daily": FreqDaily, " weekly ": FreqWeekly, "MONTH": FreqMonthly,
	} {
		got, err := ParseFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFrequency("fortnightly")
	assert.Error(t, err)
}

func TestParseStartTime(t *testing.T) {
	t.Run("accepted layouts", func(t *testing.T) {
		for _, in := range []string{"2026-09-01 15:00", "2026-09-01T15:00", "2026-09-01T15:00:00Z"} {
			got, err := ParseStartTime(in)
			require.NoError(t, err, in)
			assert.Equal(t, 15, got.Hour())
		}
	})
	t.Run("rejected", func(t *testing.T) {
		for _, in := range []string{"", "next tuesday", "2026-13-40 99:99"} {
			_, err := ParseStartTime(in)
			assert.Error(t, err, in)
		}
	})
	t.Run("round trip through the canonical format", func(t *testing.T) {
		got, err := ParseStartTime("2026-09-01 15:00")
		require.NoError(t, err)
		assert.Equal(t, "2026-09-01 15:00", FormatStartTime(got))
	})
	assert.Empty(t, FormatStartTime(time.Time{}))
}
