package handler

import (
	"context"
	"strings"
)

// requestConfirm parks a yes/no question on the session; the next message
// resolves it. The conversational equivalent of a confirm dialog.
func (h *Handler) requestConfirm(ctx context.Context, chatID int64, s *Session, message string, resolve func(confirmed bool)) {
	s.pendingConfirm = &confirmRequest{message: message, resolve: resolve}
	h.notifier.Notify(ctx, chatID, SeverityWarn, message, "Reply 'yes' to confirm, anything else to cancel.")
}

func (h *Handler) handleConfirmReply(ctx context.Context, chatID int64, s *Session, text string) {
	req := s.pendingConfirm
	s.pendingConfirm = nil
	confirmed := strings.EqualFold(strings.TrimSpace(text), "yes")
	if !confirmed {
		h.notifier.Notify(ctx, chatID, SeverityInfo, "Cancelled", "Nothing was deleted.")
	}
	req.resolve(confirmed)
}

func (h *Handler) requestDeleteCommittee(ctx context.Context, chatID int64, s *Session, id string) {
	h.requestConfirm(ctx, chatID, s, "Delete committee "+id+"? This cannot be undone.", func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := h.store.Committees().Delete(ctx, id); err != nil {
			h.log.Error().Err(err).Str("committee_id", id).Msg("error deleting committee")
			h.notifier.Notify(ctx, chatID, SeverityError, "Couldn't delete the committee", "Check the id and try again.")
			return
		}
		h.notifier.Notify(ctx, chatID, SeverityInfo, "Committee deleted", "")
		h.nav.GoTo(ctx, chatID, "committees")
	})
}

func (h *Handler) requestDeleteMeeting(ctx context.Context, chatID int64, s *Session, id string) {
	h.requestConfirm(ctx, chatID, s, "Delete meeting "+id+"? This cannot be undone.", func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := h.store.Meetings().Delete(ctx, id); err != nil {
			h.log.Error().Err(err).Str("meeting_id", id).Msg("error deleting meeting")
			h.notifier.Notify(ctx, chatID, SeverityError, "Couldn't delete the meeting", "Check the id and try again.")
			return
		}
		h.notifier.Notify(ctx, chatID, SeverityInfo, "Meeting deleted", "")
		h.nav.GoTo(ctx, chatID, "meetings")
	})
}
