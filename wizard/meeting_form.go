package wizard

import (
	"strings"

	"commbot/model"
)

// Meeting wizard steps.
const (
	MeetingStepBasicInfo = iota + 1
	MeetingStepSchedule
	MeetingStepSettings
	MeetingStepRegistrants
	MeetingSteps = MeetingStepRegistrants
)

// MeetingForm is the snapshot of the meeting wizard's fields.
type MeetingForm struct {
	Title           string
	Description     string
	StartTime       string // RFC3339, validated on the schedule step
	DurationMinutes int
	Timezone        string
	Visibility      model.MeetingVisibility
	Recurrence      model.RecurrenceFields

	touched map[string]bool
}

func (f *MeetingForm) Touch(field string) {
	if f.touched == nil {
		f.touched = make(map[string]bool)
	}
	f.touched[field] = true
}

func (f *MeetingForm) TouchAll() {
	for _, field := range []string{"title", "startTime", "duration"} {
		f.Touch(field)
	}
}

func (f *MeetingForm) Touched(field string) bool { return f.touched[field] }

// StepValid is the pure per-step predicate for the meeting wizard.
func (f *MeetingForm) StepValid(step int) bool {
	switch step {
	case MeetingStepBasicInfo:
		return strings.TrimSpace(f.Title) != ""
	case MeetingStepSchedule:
		_, err := model.ParseStartTime(f.StartTime)
		return err == nil && f.DurationMinutes > 0
	case MeetingStepSettings, MeetingStepRegistrants:
		return true
	default:
		return false
	}
}

func (f *MeetingForm) Valid() bool {
	for step := 1; step <= MeetingSteps; step++ {
		if !f.StepValid(step) {
			return false
		}
	}
	return true
}

func (f *MeetingForm) FieldErrors() []string {
	var errs []string
	if f.Touched("title") && strings.TrimSpace(f.Title) == "" {
		errs = append(errs, "title: must not be empty")
	}
	if f.Touched("startTime") {
		if _, err := model.ParseStartTime(f.StartTime); err != nil {
			errs = append(errs, "start time: "+err.Error())
		}
	}
	if f.Touched("duration") && f.DurationMinutes <= 0 {
		errs = append(errs, "duration: must be a positive number of minutes")
	}
	return errs
}

// Meeting materializes the entity payload from the form. The start time
// must have validated already; an unparsable value yields the zero time.
func (f *MeetingForm) Meeting() model.Meeting {
	start, _ := model.ParseStartTime(f.StartTime)
	visibility := f.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	return model.Meeting{
		Title:           strings.TrimSpace(f.Title),
		Description:     strings.TrimSpace(f.Description),
		StartTime:       start,
		DurationMinutes: f.DurationMinutes,
		Timezone:        f.Timezone,
		Visibility:      visibility,
		Recurrence:      model.RecurrenceFromFields(f.Recurrence),
	}
}

// LoadMeeting pre-populates the form from a fetched entity for editing.
func (f *MeetingForm) LoadMeeting(m model.Meeting) {
	f.Title = m.Title
	f.Description = m.Description
	f.StartTime = model.FormatStartTime(m.StartTime)
	f.DurationMinutes = m.DurationMinutes
	f.Timezone = m.Timezone
	f.Visibility = m.Visibility
	f.Recurrence = m.Recurrence.Fields()
}
