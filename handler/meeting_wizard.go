package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"commbot/batch"
	"commbot/ledger"
	"commbot/model"
	"commbot/wizard"
)

func newRegistrantLedger() *ledger.Ledger[model.Registrant] {
	return ledger.New(
		func(r model.Registrant) string { return r.ID },
		func(r model.Registrant, id string) model.Registrant { r.ID = id; return r },
	)
}

func (h *Handler) startMeetingWizard(s *Session, mode wizard.Mode) {
	form := &wizard.MeetingForm{}
	s.MeetingForm = form
	s.Wizard = wizard.New(wizard.MeetingSteps, mode, form.StepValid)
	s.Registrants = newRegistrantLedger()
	s.MeetingID = ""
	s.State = StateMeetingTitle
}

func (h *Handler) startMeetingEdit(ctx context.Context, chatID int64, s *Session, id string) string {
	m, err := h.store.Meetings().Get(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("meeting_id", id).Msg("error loading meeting")
		return "Couldn't load that meeting. Check the id and try again."
	}
	regs, err := h.store.Registrants().List(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("meeting_id", id).Msg("error loading registrants")
		return "Couldn't load the meeting's registrants. Please try again."
	}

	h.startMeetingWizard(s, wizard.ModeEdit)
	s.MeetingForm.LoadMeeting(m)
	s.MeetingID = id
	s.Registrants.Seed(regs)
	return "Editing '" + m.Title + "'. Use /next, /back, /goto <n> to move between steps; finish on the registrants step.\n\n" +
		h.promptMeetingStep(s)
}

func (h *Handler) promptMeetingStep(s *Session) string {
	switch s.Wizard.Current() {
	case wizard.MeetingStepBasicInfo:
		s.State = StateMeetingTitle
		return fmt.Sprintf("Step 1/%d — Basic info.\nMeeting title? (current: %q, send '-' to keep)",
			s.Wizard.Total(), s.MeetingForm.Title)
	case wizard.MeetingStepSchedule:
		s.State = StateMeetingStart
		return fmt.Sprintf("Step 2/%d — Schedule.\nWhen does it start? (e.g. 2026-09-01 15:00, send '-' to keep %q)",
			s.Wizard.Total(), s.MeetingForm.StartTime)
	case wizard.MeetingStepSettings:
		s.State = StateMeetingVisibility
		return fmt.Sprintf("Step 3/%d — Settings.\nShould the meeting be public or private?", s.Wizard.Total())
	case wizard.MeetingStepRegistrants:
		s.State = StateMeetingRegistrants
		return fmt.Sprintf("Step 4/%d — Registrants.\n%s",
			s.Wizard.Total(), renderRegistrantWorkingSet(s.Registrants.Working()))
	default:
		return "An error occurred."
	}
}

func (h *Handler) handleMeetingWizard(ctx context.Context, chatID int64, s *Session, text string) string {
	if reply, handled := h.handleWizardNav(s, text, h.promptMeetingStep); handled {
		return reply
	}

	form := s.MeetingForm
	switch s.State {
	case StateMeetingTitle:
		if text != "-" {
			form.Title = text
		}
		form.Touch("title")
		if !form.StepValid(wizard.MeetingStepBasicInfo) {
			return "The title must not be empty. Meeting title?"
		}
		s.State = StateMeetingDescription
		return fmt.Sprintf("Description? (current: %q, send '-' to keep)", form.Description)
	case StateMeetingDescription:
		if text != "-" {
			form.Description = text
		}
		s.Wizard.Next()
		return h.promptMeetingStep(s)

	case StateMeetingStart:
		if text != "-" {
			if _, err := model.ParseStartTime(text); err != nil {
				return err.Error()
			}
			form.StartTime = text
		} else if _, err := model.ParseStartTime(form.StartTime); err != nil {
			return err.Error()
		}
		form.Touch("startTime")
		s.State = StateMeetingDuration
		return fmt.Sprintf("How long, in minutes? (current: %d, send '-' to keep)", form.DurationMinutes)
	case StateMeetingDuration:
		form.Touch("duration")
		if text != "-" {
			minutes, err := strconv.Atoi(text)
			if err != nil || minutes <= 0 {
				return "Send the duration as a positive number of minutes."
			}
			form.DurationMinutes = minutes
		} else if form.DurationMinutes <= 0 {
			return "Send the duration as a positive number of minutes."
		}
		s.State = StateMeetingFrequency
		return fmt.Sprintf("Does it repeat? (none, daily, weekly, monthly; currently %q, send '-' to keep)",
			form.Recurrence.Frequency)
	case StateMeetingFrequency:
		if text == "-" {
			s.Wizard.Next()
			return h.promptMeetingStep(s)
		}
		freq, err := model.ParseFrequency(text)
		if err != nil {
			return "Please answer none, daily, weekly, or monthly."
		}
		form.Recurrence = model.RecurrenceFields{Repeats: freq != model.FreqNone, Frequency: freq, Interval: 1}
		if freq == model.FreqNone || freq == model.FreqDaily {
			s.Wizard.Next()
			return h.promptMeetingStep(s)
		}
		s.State = StateMeetingInterval
		return "Every how many " + intervalUnit(freq) + "? (send '-' for every one)"
	case StateMeetingInterval:
		if text != "-" {
			interval, err := strconv.Atoi(text)
			if err != nil || interval < 1 {
				return "Send a positive number, or '-'."
			}
			form.Recurrence.Interval = interval
		}
		s.State = StateMeetingWeekday
		return "On which weekday?"
	case StateMeetingWeekday:
		day, err := parseWeekday(text)
		if err != nil {
			return "Please send a weekday name, e.g. Monday."
		}
		form.Recurrence.Weekday = day
		if form.Recurrence.Frequency == model.FreqMonthly {
			s.State = StateMeetingOrdinal
			return "Which occurrence in the month? (first, second, third, fourth, last)"
		}
		s.Wizard.Next()
		return h.promptMeetingStep(s)
	case StateMeetingOrdinal:
		ord, err := parseOrdinal(text)
		if err != nil {
			return "Please answer first, second, third, fourth, or last."
		}
		form.Recurrence.MonthlyOrdinal = ord
		s.Wizard.Next()
		return h.promptMeetingStep(s)

	case StateMeetingVisibility:
		switch strings.ToLower(text) {
		case "public":
			form.Visibility = model.VisibilityPublic
		case "private":
			form.Visibility = model.VisibilityPrivate
		default:
			return "Please answer public or private."
		}
		// Create mode persists the parent here so the registrants step can
		// commit against a real id. Edit mode defers everything to submit.
		if s.Wizard.Mode() == wizard.ModeCreate {
			if reply, ok := h.persistNewMeeting(ctx, chatID, s); !ok {
				return reply
			}
		}
		s.Wizard.Next()
		return h.promptMeetingStep(s)

	case StateMeetingRegistrants:
		return h.handleRegistrantsHub(ctx, chatID, s, text)

	case StateRegistrantFirstName:
		s.draftRegistrant.FirstName = text
		s.State = StateRegistrantLastName
		return "Last name?"
	case StateRegistrantLastName:
		s.draftRegistrant.LastName = text
		s.State = StateRegistrantEmail
		return "Email address?"
	case StateRegistrantEmail:
		if !strings.Contains(text, "@") {
			return "That doesn't look like an email address. Email?"
		}
		s.draftRegistrant.Email = text
		s.State = StateRegistrantOrganization
		return "Organization? (send '-' to skip)"
	case StateRegistrantOrganization:
		if text != "-" {
			s.draftRegistrant.Organization = text
		}
		s.State = StateRegistrantHost
		return "Are they hosting the meeting? (yes/no)"
	case StateRegistrantHost:
		host, err := parseYesNo(text)
		if err != nil {
			return "Please answer yes or no. Are they hosting?"
		}
		s.draftRegistrant.Host = host
		return h.finishRegistrantForm(s)

	case StateRemoveRegistrant:
		n, err := strconv.Atoi(text)
		working := s.Registrants.Working()
		if err != nil || n < 1 || n > len(working) {
			return "Send the number of the registrant to remove."
		}
		if err := s.Registrants.Remove(working[n-1].ID); err != nil {
			h.log.Warn().Err(err).Msg("error removing registrant from ledger")
		}
		s.State = StateMeetingRegistrants
		return renderRegistrantWorkingSet(s.Registrants.Working())
	}
	return "An error occurred."
}

// finishRegistrantForm records the completed sub-form in the ledger: an
// update when editing an existing entry, otherwise a new entry under a temp
// id.
func (h *Handler) finishRegistrantForm(s *Session) string {
	s.draftRegistrant.MeetingID = s.MeetingID
	if s.editingRegistrantID != "" {
		if err := s.Registrants.Update(s.editingRegistrantID, s.draftRegistrant); err != nil {
			h.log.Warn().Err(err).Str("registrant_id", s.editingRegistrantID).Msg("error updating ledger entry")
		}
		s.editingRegistrantID = ""
	} else {
		s.Registrants.Add(s.draftRegistrant)
	}
	s.draftRegistrant = model.Registrant{}
	s.State = StateMeetingRegistrants
	return renderRegistrantWorkingSet(s.Registrants.Working())
}

func (h *Handler) handleRegistrantsHub(ctx context.Context, chatID int64, s *Session, text string) string {
	cmd, arg := splitCommand(strings.ToLower(text))
	switch cmd {
	case "add":
		s.draftRegistrant = model.Registrant{}
		s.editingRegistrantID = ""
		s.State = StateRegistrantFirstName
		return "Adding a registrant. First name?"
	case "edit":
		n, err := strconv.Atoi(arg)
		working := s.Registrants.Working()
		if err != nil || n < 1 || n > len(working) {
			return "Send 'edit <n>' with the registrant's number."
		}
		s.draftRegistrant = working[n-1]
		s.editingRegistrantID = working[n-1].ID
		s.State = StateRegistrantFirstName
		return fmt.Sprintf("Editing %s %s. First name? (currently %q)",
			working[n-1].FirstName, working[n-1].LastName, working[n-1].FirstName)
	case "remove":
		if arg == "" {
			s.State = StateRemoveRegistrant
			return "Which registrant? Send their number."
		}
		n, err := strconv.Atoi(arg)
		working := s.Registrants.Working()
		if err != nil || n < 1 || n > len(working) {
			return "Send 'remove <n>' with the registrant's number."
		}
		if err := s.Registrants.Remove(working[n-1].ID); err != nil {
			h.log.Warn().Err(err).Msg("error removing registrant from ledger")
		}
		return renderRegistrantWorkingSet(s.Registrants.Working())
	case "list":
		return renderRegistrantWorkingSet(s.Registrants.Working())
	case "done":
		h.submitMeeting(ctx, chatID, s)
		return ""
	default:
		return "Send 'add', 'edit <n>', 'remove <n>', 'list', or 'done'."
	}
}

func (h *Handler) persistNewMeeting(ctx context.Context, chatID int64, s *Session) (reply string, ok bool) {
	form := s.MeetingForm
	form.TouchAll()
	if !form.Valid() {
		h.notifier.Notify(ctx, chatID, SeverityError, "Validation failed", strings.Join(form.FieldErrors(), "\n"))
		return "", false
	}
	id, err := h.store.Meetings().Create(ctx, form.Meeting())
	if err != nil {
		h.log.Error().Err(err).Msg("error creating meeting")
		h.notifier.Notify(ctx, chatID, SeverityError, "Couldn't create the meeting",
			"Nothing was saved. Send public/private again to retry.")
		return "", false
	}
	s.MeetingID = id
	h.log.Info().Str("meeting_id", id).Msg("meeting created")
	h.notifier.Notify(ctx, chatID, SeverityInfo, "Meeting created", "Now let's sign up registrants.")
	return "", true
}

// submitMeeting finalizes the wizard from the registrants step, mirroring
// submitCommittee: create commits the registrant changes sequentially
// against the already created parent, edit runs the parent update in
// parallel with them.
func (h *Handler) submitMeeting(ctx context.Context, chatID int64, s *Session) {
	if s.Wizard.Mode() == wizard.ModeCreate {
		h.finishMeetingCreate(ctx, chatID, s)
		return
	}
	h.finishMeetingEdit(ctx, chatID, s)
}

func (h *Handler) finishMeetingCreate(ctx context.Context, chatID int64, s *Session) {
	meetingID := s.MeetingID
	ops := batch.BuildRegistrantOperations(meetingID, s.Registrants.Diff(), h.store.Registrants())
	summary := batch.RunSequential(ctx, ops)

	h.log.Info().
		Str("meeting_id", meetingID).
		Int("operations", summary.TotalOperations).
		Int("succeeded", summary.TotalSuccess).
		Int("failed", summary.TotalFailed).
		Msg("registrant batch finished")

	if summary.TotalOperations > 0 {
		sev, sum, detail := summaryNotification(summary)
		h.notifier.Notify(ctx, chatID, sev, sum, detail)
	}

	s.Registrants.Clear()
	s.Reset()
	h.nav.GoTo(ctx, chatID, "meeting/"+meetingID)
}

func (h *Handler) finishMeetingEdit(ctx context.Context, chatID int64, s *Session) {
	form := s.MeetingForm
	form.TouchAll()
	if !form.Valid() {
		h.notifier.Notify(ctx, chatID, SeverityError, "Validation failed", strings.Join(form.FieldErrors(), "\n"))
		return
	}

	meetingID := s.MeetingID
	payload := form.Meeting()
	payload.ID = meetingID

	ops := []batch.Operation{{
		Type: "meeting.update",
		Run: func(ctx context.Context) error {
			return h.store.Meetings().Update(ctx, meetingID, payload)
		},
	}}
	ops = append(ops, batch.BuildRegistrantOperations(meetingID, s.Registrants.Diff(), h.store.Registrants())...)
	summary := batch.RunParallel(ctx, ops)

	h.log.Info().
		Str("meeting_id", meetingID).
		Int("operations", summary.TotalOperations).
		Int("succeeded", summary.TotalSuccess).
		Int("failed", summary.TotalFailed).
		Msg("meeting edit finished")

	sev, sum, detail := summaryNotification(summary)
	h.notifier.Notify(ctx, chatID, sev, sum, detail)

	s.Registrants.Clear()
	s.Reset()
	h.nav.GoTo(ctx, chatID, "meeting/"+meetingID)
}

func intervalUnit(f model.RecurrenceFrequency) string {
	if f == model.FreqMonthly {
		return "months"
	}
	return "weeks"
}

func parseWeekday(text string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", text)
}

func parseOrdinal(text string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "first", "1":
		return 1, nil
	case "second", "2":
		return 2, nil
	case "third", "3":
		return 3, nil
	case "fourth", "4":
		return 4, nil
	case "last":
		return -1, nil
	}
	return 0, fmt.Errorf("unknown ordinal %q", text)
}
