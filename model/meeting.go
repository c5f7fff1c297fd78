package model

import (
	"fmt"
	"strings"
	"time"
)

// MeetingVisibility controls who can see a meeting.
type MeetingVisibility string

const (
	VisibilityPublic  MeetingVisibility = "public"
	VisibilityPrivate MeetingVisibility = "private"
)

type Meeting struct {
	ID              string            `json:"id"`
	ProjectID       string            `json:"projectID"`
	CommitteeID     string            `json:"committeeID"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	StartTime       time.Time         `json:"startTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Timezone        string            `json:"timezone"`
	Visibility      MeetingVisibility `json:"visibility"`
	Recurrence      Recurrence        `json:"recurrence"`
	Registrants     []string          `json:"registrants"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// startTimeLayouts are the accepted user-entered start time formats, tried
// in order.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseStartTime reads a user-entered meeting start time.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("start time is required")
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, use e.g. 2026-03-01 15:04", s)
}

// FormatStartTime renders a start time in the canonical entry format.
func FormatStartTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
