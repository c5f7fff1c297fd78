// Package handler wires the Telegram conversation to the wizard, ledger,
// batcher, and view logic. One update at a time per user: each incoming
// message is interpreted against the user's conversation state.
package handler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"commbot/ledger"
	"commbot/model"
	"commbot/repo"
	"commbot/view"
	"commbot/wizard"
)

const helpText = `Commands:
/committees – list committees (then /search, /category, /voting, /clearfilters)
/newcommittee – create a committee step by step
/editcommittee <id> – edit a committee and its members
/deletecommittee <id> – delete a committee
/members <id> – list a committee's members
/meetings – list meetings (then /search, /visibility, /clearfilters)
/newmeeting – schedule a meeting step by step
/editmeeting <id> – edit a meeting and its registrants
/deletemeeting <id> – delete a meeting
/cancel – abandon the current flow`

// Handler owns the organizer-facing conversation. Collaborators are
// injected so the flows run against fakes in tests.
type Handler struct {
	store    repo.Store
	notifier Notifier
	nav      Navigator
	avatars  *repo.AvatarService
	sessions *Sessions
	log      zerolog.Logger

	initOnce sync.Once
}

func New(store repo.Store, notifier Notifier, nav Navigator, avatars *repo.AvatarService, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		notifier: notifier,
		nav:      nav,
		avatars:  avatars,
		sessions: NewSessions(),
		log:      logger,
	}
}

// Handle is the bot's default handler. Notifier and navigator default to
// the Telegram implementations bound to the running bot.
func (h *Handler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	// Channel posts and anonymous admins carry no sender.
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.initOnce.Do(func() {
		if h.notifier == nil {
			h.notifier = NewTelegramNotifier(b)
		}
		if h.nav == nil {
			h.nav = NewTelegramNavigator(b, h.store)
		}
	})

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)

	h.log.Debug().Int64("user_id", userID).Str("text", text).Msg("update")

	s := h.sessions.Get(userID)

	if s.pendingConfirm != nil {
		h.handleConfirmReply(ctx, chatID, s, text)
		return
	}
	if text == "/cancel" {
		s.Reset()
		h.send(ctx, b, chatID, "Okay, cancelled. Nothing was committed.")
		return
	}

	var reply string
	switch s.State {
	case StateIdle:
		reply = h.handleIdle(ctx, chatID, s, text)

	case StateCommitteeCategory, StateCommitteeName, StateCommitteeDescription,
		StateCommitteeVoting, StateCommitteeVisibility, StateCommitteeMembers,
		StateMemberFirstName, StateMemberLastName, StateMemberEmail,
		StateMemberOrganization, StateMemberRole, StateMemberAvatar, StateRemoveMember:
		reply = h.handleCommitteeWizard(ctx, chatID, s, update.Message, text)

	case StateMeetingTitle, StateMeetingDescription, StateMeetingStart,
		StateMeetingDuration, StateMeetingVisibility, StateMeetingFrequency,
		StateMeetingInterval, StateMeetingWeekday, StateMeetingOrdinal,
		StateMeetingRegistrants,
		StateRegistrantFirstName, StateRegistrantLastName, StateRegistrantEmail,
		StateRegistrantOrganization, StateRegistrantHost, StateRemoveRegistrant:
		reply = h.handleMeetingWizard(ctx, chatID, s, text)

	default:
		s.Reset()
		reply = "An error occurred. Use /help to start over."
	}

	if reply != "" {
		h.send(ctx, b, chatID, reply)
	}
}

func (h *Handler) send(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("error sending message")
	}
}

func (h *Handler) handleIdle(ctx context.Context, chatID int64, s *Session, text string) string {
	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start":
		return "Hello! I help you manage project committees, members, and meetings.\n" + helpText
	case "/help":
		return helpText

	case "/committees":
		committees, err := h.store.Committees().List(ctx, "")
		if err != nil {
			h.log.Error().Err(err).Msg("error listing committees")
			return "Couldn't load committees. Please try again."
		}
		if s.Committees == nil {
			s.Committees = view.NewCommitteeView()
		}
		s.Committees.ClearFilters()
		s.Committees.SetSource(committees)
		s.activeList = listCommittees
		return renderCommitteeList(s.Committees.Result()) +
			"\nFilter with /search <term>, /category <name>, /voting on|off."

	case "/search":
		switch s.activeList {
		case listCommittees:
			s.Committees.SetSearch(arg)
			return renderCommitteeList(s.Committees.Result())
		case listMeetings:
			s.MeetingList.SetSearch(arg)
			return renderMeetingList(s.MeetingList.Result())
		}
		return "Load a list first with /committees or /meetings."
	case "/category":
		if s.Committees == nil {
			return "Load the list first with /committees."
		}
		if arg == "" {
			s.Committees.SetCategory(nil)
		} else {
			c := model.CommitteeCategory(arg)
			if !model.ValidCategory(c) {
				return "Unknown category. One of: " + categoryList()
			}
			s.Committees.SetCategory(&c)
		}
		return renderCommitteeList(s.Committees.Result())
	case "/voting":
		if s.Committees == nil {
			return "Load the list first with /committees."
		}
		switch strings.ToLower(arg) {
		case "on":
			v := true
			s.Committees.SetVoting(&v)
		case "off":
			v := false
			s.Committees.SetVoting(&v)
		default:
			return "Use /voting on or /voting off."
		}
		return renderCommitteeList(s.Committees.Result())
	case "/clearfilters":
		switch s.activeList {
		case listCommittees:
			s.Committees.ClearFilters()
			return renderCommitteeList(s.Committees.Result())
		case listMeetings:
			s.MeetingList.ClearFilters()
			return renderMeetingList(s.MeetingList.Result())
		}
		return "Load a list first with /committees or /meetings."

	case "/newcommittee":
		h.startCommitteeWizard(s, wizard.ModeCreate)
		return h.promptCommitteeStep(s)
	case "/editcommittee":
		if arg == "" {
			return "Usage: /editcommittee <id>"
		}
		return h.startCommitteeEdit(ctx, chatID, s, arg)
	case "/deletecommittee":
		if arg == "" {
			return "Usage: /deletecommittee <id>"
		}
		h.requestDeleteCommittee(ctx, chatID, s, arg)
		return ""

	case "/members":
		if arg == "" {
			return "Usage: /members <committeeID>"
		}
		members, err := h.store.Members().List(ctx, arg)
		if err != nil {
			h.log.Error().Err(err).Str("committee_id", arg).Msg("error listing members")
			return "Couldn't load members. Please try again."
		}
		sorted := view.Members(members, view.MemberFilter{})
		if len(sorted) == 0 {
			return "No members on that committee."
		}
		var sb strings.Builder
		sb.WriteString("Members:\n")
		for _, m := range sorted {
			fmt.Fprintf(&sb, "- %s <%s> — %s, %s\n", m.FullName(), m.Email, m.Organization, m.Role)
		}
		return sb.String()

	case "/meetings":
		meetings, err := h.store.Meetings().List(ctx, "")
		if err != nil {
			h.log.Error().Err(err).Msg("error listing meetings")
			return "Couldn't load meetings. Please try again."
		}
		if s.MeetingList == nil {
			s.MeetingList = view.NewMeetingView()
		}
		s.MeetingList.ClearFilters()
		s.MeetingList.SetSource(meetings)
		s.activeList = listMeetings
		return renderMeetingList(s.MeetingList.Result()) +
			"\nFilter with /search <term>, /visibility public|private."
	case "/visibility":
		if s.activeList != listMeetings {
			return "Load the meeting list first with /meetings."
		}
		switch strings.ToLower(arg) {
		case "public":
			v := model.VisibilityPublic
			s.MeetingList.SetVisibility(&v)
		case "private":
			v := model.VisibilityPrivate
			s.MeetingList.SetVisibility(&v)
		case "all":
			s.MeetingList.SetVisibility(nil)
		default:
			return "Use /visibility public, private, or all."
		}
		return renderMeetingList(s.MeetingList.Result())
	case "/newmeeting":
		h.startMeetingWizard(s, wizard.ModeCreate)
		return h.promptMeetingStep(s)
	case "/editmeeting":
		if arg == "" {
			return "Usage: /editmeeting <id>"
		}
		return h.startMeetingEdit(ctx, chatID, s, arg)
	case "/deletemeeting":
		if arg == "" {
			return "Usage: /deletemeeting <id>"
		}
		h.requestDeleteMeeting(ctx, chatID, s, arg)
		return ""

	default:
		return "I didn't understand that command. Use /start or /help."
	}
}

func splitCommand(text string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(text, " ")
	return cmd, strings.TrimSpace(arg)
}

func categoryList() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// startCommitteeWizard resets the session into a fresh committee wizard.
func (h *Handler) startCommitteeWizard(s *Session, mode wizard.Mode) {
	form := &wizard.CommitteeForm{}
	s.CommitteeForm = form
	s.Wizard = wizard.New(wizard.CommitteeSteps, mode, form.StepValid)
	s.Members = newMemberLedger()
	s.CommitteeID = ""
	s.State = StateCommitteeCategory
}

func newMemberLedger() *ledger.Ledger[model.Member] {
	return ledger.New(
		func(m model.Member) string { return m.ID },
		func(m model.Member, id string) model.Member { m.ID = id; return m },
	)
}

func (h *Handler) startCommitteeEdit(ctx context.Context, chatID int64, s *Session, id string) string {
	c, err := h.store.Committees().Get(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("committee_id", id).Int("status", repo.StatusCode(err)).Msg("error loading committee")
		return "Couldn't load that committee. Check the id and try again."
	}
	members, err := h.store.Members().List(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("committee_id", id).Msg("error loading members")
		return "Couldn't load the committee's members. Please try again."
	}

	h.startCommitteeWizard(s, wizard.ModeEdit)
	s.CommitteeForm.LoadCommittee(c)
	s.CommitteeID = id
	s.Members.Seed(members)
	return "Editing '" + c.Name + "'. Use /next, /back, /goto <n> to move between steps; finish on the members step.\n\n" +
		h.promptCommitteeStep(s)
}
