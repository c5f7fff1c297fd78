package handler

import (
	"context"
	"fmt"
	"strings"

	"commbot/batch"
	"commbot/wizard"
)

// summaryNotification maps a finished batch onto the single user-facing
// toast for it.
func summaryNotification(s batch.Summary) (Severity, string, string) {
	switch s.Outcome() {
	case batch.AllSucceeded:
		return SeverityInfo, "Success", fmt.Sprintf("%d operation(s) completed", s.TotalOperations)
	case batch.PartialSuccess:
		return SeverityWarn, "Partial Success", fmt.Sprintf("%d succeeded, %d failed", s.TotalSuccess, s.TotalFailed)
	default:
		return SeverityError, "Failed", fmt.Sprintf("all %d operation(s) failed", s.TotalOperations)
	}
}

// persistNewCommittee creates the parent entity during the create flow. On
// failure the wizard stays where it is; nothing the user entered is lost.
func (h *Handler) persistNewCommittee(ctx context.Context, chatID int64, s *Session) (reply string, ok bool) {
	form := s.CommitteeForm
	form.TouchAll()
	if !form.Valid() {
		h.notifier.Notify(ctx, chatID, SeverityError, "Validation failed", strings.Join(form.FieldErrors(), "\n"))
		return "", false
	}

	id, err := h.store.Committees().Create(ctx, form.Committee())
	if err != nil {
		h.log.Error().Err(err).Msg("error creating committee")
		h.notifier.Notify(ctx, chatID, SeverityError, "Couldn't create the committee",
			"Nothing was saved. Send public/private again to retry.")
		return "", false
	}
	s.CommitteeID = id
	h.log.Info().Str("committee_id", id).Msg("committee created")
	h.notifier.Notify(ctx, chatID, SeverityInfo, "Committee created", "Now let's set up its members.")
	return "", true
}

// submitCommittee finalizes the wizard from the members step. Create mode
// commits the accumulated member changes sequentially against the already
// created parent; edit mode validates, then runs the parent update in
// parallel with the member operations. Either way the user is navigated to
// the committee afterwards — child failures never block navigation.
func (h *Handler) submitCommittee(ctx context.Context, chatID int64, s *Session) {
	if s.Wizard.Mode() == wizard.ModeCreate {
		h.finishCommitteeCreate(ctx, chatID, s)
		return
	}
	h.finishCommitteeEdit(ctx, chatID, s)
}

func (h *Handler) finishCommitteeCreate(ctx context.Context, chatID int64, s *Session) {
	committeeID := s.CommitteeID
	changes := s.Members.Diff()

	// Deletes, then updates, then adds, each settling before the next.
	ops := batch.BuildMemberOperations(committeeID, changes, h.store.Members())
	summary := batch.RunSequential(ctx, ops)

	h.log.Info().
		Str("committee_id", committeeID).
		Int("operations", summary.TotalOperations).
		Int("succeeded", summary.TotalSuccess).
		Int("failed", summary.TotalFailed).
		Msg("member batch finished")

	if summary.TotalOperations > 0 {
		sev, sum, detail := summaryNotification(summary)
		h.notifier.Notify(ctx, chatID, sev, sum, detail)
	}

	s.Members.Clear()
	s.Reset()
	h.nav.GoTo(ctx, chatID, "committee/"+committeeID)
}

func (h *Handler) finishCommitteeEdit(ctx context.Context, chatID int64, s *Session) {
	form := s.CommitteeForm
	form.TouchAll()
	if !form.Valid() {
		// Invalid form: stay on the current step with inline errors.
		h.notifier.Notify(ctx, chatID, SeverityError, "Validation failed", strings.Join(form.FieldErrors(), "\n"))
		return
	}

	committeeID := s.CommitteeID
	payload := form.Committee()
	payload.ID = committeeID

	// The parent update is independent of the member operations, so the
	// whole set runs concurrently.
	ops := []batch.Operation{{
		Type: "committee.update",
		Run: func(ctx context.Context) error {
			return h.store.Committees().Update(ctx, committeeID, payload)
		},
	}}
	ops = append(ops, batch.BuildMemberOperations(committeeID, s.Members.Diff(), h.store.Members())...)
	summary := batch.RunParallel(ctx, ops)

	h.log.Info().
		Str("committee_id", committeeID).
		Int("operations", summary.TotalOperations).
		Int("succeeded", summary.TotalSuccess).
		Int("failed", summary.TotalFailed).
		Msg("committee edit finished")

	sev, sum, detail := summaryNotification(summary)
	h.notifier.Notify(ctx, chatID, sev, sum, detail)

	s.Members.Clear()
	s.Reset()
	h.nav.GoTo(ctx, chatID, "committee/"+committeeID)
}
