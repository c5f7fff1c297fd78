package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"commbot/model"
	"commbot/wizard"
)

// promptCommitteeStep renders the prompt for the wizard's current step and
// moves the conversation state to the step's first field.
func (h *Handler) promptCommitteeStep(s *Session) string {
	switch s.Wizard.Current() {
	case wizard.CommitteeStepCategory:
		s.State = StateCommitteeCategory
		return fmt.Sprintf("Step 1/%d — Category.\nPick one of: %s", s.Wizard.Total(), categoryList())
	case wizard.CommitteeStepBasicInfo:
		s.CommitteeForm.EnterBasicInfo()
		s.State = StateCommitteeName
		return fmt.Sprintf("Step 2/%d — Basic info.\nCommittee name? (current: %q, send '-' to keep)",
			s.Wizard.Total(), s.CommitteeForm.Name)
	case wizard.CommitteeStepSettings:
		s.State = StateCommitteeVoting
		return fmt.Sprintf("Step 3/%d — Settings.\nEnable voting? (yes/no)", s.Wizard.Total())
	case wizard.CommitteeStepMembers:
		s.State = StateCommitteeMembers
		return fmt.Sprintf("Step 4/%d — Members.\n%s",
			s.Wizard.Total(), renderMemberWorkingSet(s.Members.Working()))
	default:
		return "An error occurred."
	}
}

// handleWizardNav processes the shared /next, /back, /goto commands.
// handled is false when text is not a navigation command.
func (h *Handler) handleWizardNav(s *Session, text string, prompt func(*Session) string) (reply string, handled bool) {
	cmd, arg := splitCommand(text)
	switch cmd {
	case "/back":
		if !s.Wizard.Previous() {
			return "Already on the first step.", true
		}
		return prompt(s), true
	case "/next":
		if !s.Wizard.Next() {
			return "Finish this step first — earlier steps must be valid to move forward.", true
		}
		return prompt(s), true
	case "/goto":
		target, err := strconv.Atoi(arg)
		if err != nil {
			return "Usage: /goto <step number>", true
		}
		if !s.Wizard.GoTo(target) {
			return "Can't jump there yet — earlier steps must be valid to move forward.", true
		}
		return prompt(s), true
	}
	return "", false
}

func (h *Handler) handleCommitteeWizard(ctx context.Context, chatID int64, s *Session, msg *models.Message, text string) string {
	if reply, handled := h.handleWizardNav(s, text, h.promptCommitteeStep); handled {
		return reply
	}

	form := s.CommitteeForm
	switch s.State {
	case StateCommitteeCategory:
		c := model.CommitteeCategory(text)
		form.Touch("category")
		if !model.ValidCategory(c) {
			return "Unknown category. Pick one of: " + categoryList()
		}
		form.Category = c
		s.Wizard.Next()
		return h.promptCommitteeStep(s)

	case StateCommitteeName:
		if text != "-" {
			form.Name = text
			form.NameAutofilled = true // user typed; autofill never fires again
		}
		form.Touch("name")
		if !form.StepValid(wizard.CommitteeStepBasicInfo) {
			return "The name must not be empty. What's the committee's name?"
		}
		s.State = StateCommitteeDescription
		return fmt.Sprintf("Description? (current: %q, send '-' to keep)", form.Description)

	case StateCommitteeDescription:
		if text != "-" {
			form.Description = text
		}
		form.Touch("description")
		s.Wizard.Next()
		return h.promptCommitteeStep(s)

	case StateCommitteeVoting:
		v, err := parseYesNo(text)
		if err != nil {
			return "Please answer yes or no. Enable voting?"
		}
		form.EnableVoting = v
		s.State = StateCommitteeVisibility
		return "Should the committee be public or private?"

	case StateCommitteeVisibility:
		switch strings.ToLower(text) {
		case "public":
			form.Public = true
		case "private":
			form.Public = false
		default:
			return "Please answer public or private."
		}
		// Create mode persists the parent here so the members step can
		// commit against a real id. Edit mode defers everything to submit.
		if s.Wizard.Mode() == wizard.ModeCreate {
			if reply, ok := h.persistNewCommittee(ctx, chatID, s); !ok {
				return reply
			}
		}
		s.Wizard.Next()
		return h.promptCommitteeStep(s)

	case StateCommitteeMembers:
		return h.handleMembersHub(ctx, chatID, s, text)

	case StateMemberFirstName:
		s.draftMember.FirstName = text
		s.State = StateMemberLastName
		return "Last name?"
	case StateMemberLastName:
		s.draftMember.LastName = text
		s.State = StateMemberEmail
		return "Email address?"
	case StateMemberEmail:
		if !strings.Contains(text, "@") {
			return "That doesn't look like an email address. Email?"
		}
		s.draftMember.Email = text
		s.State = StateMemberOrganization
		return "Organization?"
	case StateMemberOrganization:
		s.draftMember.Organization = text
		s.State = StateMemberRole
		return "Role? (chair, vice-chair, member, observer — send '-' for member)"
	case StateMemberRole:
		role, err := parseRole(text)
		if err != nil {
			return "Unknown role. One of: chair, vice-chair, member, observer."
		}
		s.draftMember.Role = role
		s.draftMember.Status = model.StatusActive
		s.State = StateMemberAvatar
		return "Send a photo for their avatar, or 'skip'."
	case StateMemberAvatar:
		if len(msg.Photo) > 0 && h.avatars != nil {
			largest := msg.Photo[len(msg.Photo)-1]
			url, err := h.avatars.ResolveFileURL(ctx, largest.FileID)
			if err != nil {
				h.log.Warn().Err(err).Msg("error resolving avatar URL")
			} else {
				s.draftMember.AvatarURL = url
			}
		} else if len(msg.Photo) == 0 && strings.ToLower(text) != "skip" {
			return "Send a photo, or 'skip'."
		}
		return h.finishMemberForm(s)

	case StateRemoveMember:
		n, err := strconv.Atoi(text)
		working := s.Members.Working()
		if err != nil || n < 1 || n > len(working) {
			return "Send the number of the member to remove."
		}
		if err := s.Members.Remove(working[n-1].ID); err != nil {
			h.log.Warn().Err(err).Msg("error removing member from ledger")
		}
		s.State = StateCommitteeMembers
		return renderMemberWorkingSet(s.Members.Working())
	}
	return "An error occurred."
}

// finishMemberForm records the completed sub-form in the ledger: an update
// when editing an existing entry, otherwise a new entry under a temp id.
func (h *Handler) finishMemberForm(s *Session) string {
	s.draftMember.CommitteeID = s.CommitteeID
	if s.editingMemberID != "" {
		if err := s.Members.Update(s.editingMemberID, s.draftMember); err != nil {
			h.log.Warn().Err(err).Str("member_id", s.editingMemberID).Msg("error updating ledger entry")
		}
		s.editingMemberID = ""
	} else {
		s.Members.Add(s.draftMember)
	}
	s.draftMember = model.Member{}
	s.State = StateCommitteeMembers
	return renderMemberWorkingSet(s.Members.Working())
}

func (h *Handler) handleMembersHub(ctx context.Context, chatID int64, s *Session, text string) string {
	cmd, arg := splitCommand(strings.ToLower(text))
	switch cmd {
	case "add":
		s.draftMember = model.Member{}
		s.editingMemberID = ""
		s.State = StateMemberFirstName
		return "Adding a member. First name?"
	case "edit":
		n, err := strconv.Atoi(arg)
		working := s.Members.Working()
		if err != nil || n < 1 || n > len(working) {
			return "Send 'edit <n>' with the member's number."
		}
		s.draftMember = working[n-1]
		s.editingMemberID = working[n-1].ID
		s.State = StateMemberFirstName
		return fmt.Sprintf("Editing %s. First name? (currently %q)", working[n-1].FullName(), working[n-1].FirstName)
	case "remove":
		if arg == "" {
			s.State = StateRemoveMember
			return "Which member? Send their number."
		}
		n, err := strconv.Atoi(arg)
		working := s.Members.Working()
		if err != nil || n < 1 || n > len(working) {
			return "Send 'remove <n>' with the member's number."
		}
		if err := s.Members.Remove(working[n-1].ID); err != nil {
			h.log.Warn().Err(err).Msg("error removing member from ledger")
		}
		return renderMemberWorkingSet(s.Members.Working())
	case "list":
		return renderMemberWorkingSet(s.Members.Working())
	case "done":
		h.submitCommittee(ctx, chatID, s)
		return ""
	default:
		return "Send 'add', 'edit <n>', 'remove <n>', 'list', or 'done'."
	}
}

func parseYesNo(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a yes/no answer: %q", text)
}

func parseRole(text string) (model.MemberRole, error) {
	switch strings.ToLower(text) {
	case "-", "member":
		return model.RoleMember, nil
	case "chair":
		return model.RoleChair, nil
	case "vice-chair", "vicechair":
		return model.RoleViceChair, nil
	case "observer":
		return model.RoleObserver, nil
	}
	return "", fmt.Errorf("unknown role %q", text)
}
