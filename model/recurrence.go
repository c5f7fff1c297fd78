package model

import (
	"fmt"
	"strings"
	"time"
)

// RecurrenceFrequency is how often a meeting repeats.
type RecurrenceFrequency string

const (
	FreqNone    RecurrenceFrequency = "none"
	FreqDaily   RecurrenceFrequency = "daily"
	FreqWeekly  RecurrenceFrequency = "weekly"
	FreqMonthly RecurrenceFrequency = "monthly"
)

// Recurrence describes a meeting's repeat pattern. A zero Recurrence means
// the meeting does not repeat.
type Recurrence struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	// Interval is the gap between occurrences in Frequency units; an
	// interval of 0 is read as 1.
	Interval int `json:"interval"`
	// Weekday applies to weekly patterns.
	Weekday time.Weekday `json:"weekday"`
	// MonthlyOrdinal applies to monthly patterns: 1 for "first", 2 for
	// "second", up to 4, or -1 for "last".
	MonthlyOrdinal int `json:"monthlyOrdinal"`
}

// RecurrenceFields is the flat form-field shape the wizard edits. The
// backend pattern and the form fields are mapped in both directions so a
// fetched meeting pre-populates the schedule step.
type RecurrenceFields struct {
	Repeats        bool
	Frequency      RecurrenceFrequency
	Interval       int
	Weekday        time.Weekday
	MonthlyOrdinal int
}

// Fields maps the stored pattern onto wizard form fields.
func (r Recurrence) Fields() RecurrenceFields {
	if r.Frequency == "" || r.Frequency == FreqNone {
		return RecurrenceFields{Frequency: FreqNone}
	}
	f := RecurrenceFields{
		Repeats:        true,
		Frequency:      r.Frequency,
		Interval:       r.Interval,
		Weekday:        r.Weekday,
		MonthlyOrdinal: r.MonthlyOrdinal,
	}
	if f.Interval == 0 {
		f.Interval = 1
	}
	return f
}

// RecurrenceFromFields maps wizard form fields back to the stored pattern.
func RecurrenceFromFields(f RecurrenceFields) Recurrence {
	if !f.Repeats || f.Frequency == FreqNone {
		return Recurrence{Frequency: FreqNone}
	}
	r := Recurrence{
		Frequency:      f.Frequency,
		Interval:       f.Interval,
		Weekday:        f.Weekday,
		MonthlyOrdinal: f.MonthlyOrdinal,
	}
	if r.Interval == 0 {
		r.Interval = 1
	}
	return r
}

var ordinalNames = map[int]string{1: "first", 2: "second", 3: "third", 4: "fourth", -1: "last"}

// Summary renders the pattern for display, e.g. "Every 2 weeks on Monday".
func (r Recurrence) Summary() string {
	interval := r.Interval
	if interval == 0 {
		interval = 1
	}
	switch r.Frequency {
	case FreqDaily:
		if interval == 1 {
			return "Every day"
		}
		return fmt.Sprintf("Every %d days", interval)
	case FreqWeekly:
		day := r.Weekday.String()
		if interval == 1 {
			return "Every week on " + day
		}
		return fmt.Sprintf("Every %d weeks on %s", interval, day)
	case FreqMonthly:
		ord, ok := ordinalNames[r.MonthlyOrdinal]
		if !ok {
			ord = ordinalNames[1]
		}
		day := r.Weekday.String()
		if interval == 1 {
			return fmt.Sprintf("Monthly on the %s %s", ord, day)
		}
		return fmt.Sprintf("Every %d months on the %s %s", interval, ord, day)
	default:
		return "Does not repeat"
	}
}

// ParseFrequency reads a user-entered frequency word.
func ParseFrequency(s string) (RecurrenceFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "no", "once":
		return FreqNone, nil
	case "daily", "day":
		return FreqDaily, nil
	case "weekly", "week":
		return FreqWeekly, nil
	case "monthly", "month":
		return FreqMonthly, nil
	default:
		return "", fmt.Errorf("unknown frequency %q", s)
	}
}
