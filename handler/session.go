package handler

import (
	"sync"

	"commbot/ledger"
	"commbot/model"
	"commbot/view"
	"commbot/wizard"
)

// Conversation states. Each prompt the bot sends corresponds to one state;
// the next message from the user is interpreted against it.
const (
	StateIdle = iota

	// Committee wizard
	StateCommitteeCategory
	StateCommitteeName
	StateCommitteeDescription
	StateCommitteeVoting
	StateCommitteeVisibility
	StateCommitteeMembers

	// Member sub-form inside the members step
	StateMemberFirstName
	StateMemberLastName
	StateMemberEmail
	StateMemberOrganization
	StateMemberRole
	StateMemberAvatar
	StateRemoveMember

	// Meeting wizard
	StateMeetingTitle
	StateMeetingDescription
	StateMeetingStart
	StateMeetingDuration
	StateMeetingVisibility
	StateMeetingFrequency
	StateMeetingInterval
	StateMeetingWeekday
	StateMeetingOrdinal
	StateMeetingRegistrants

	// Registrant sub-form inside the registrants step
	StateRegistrantFirstName
	StateRegistrantLastName
	StateRegistrantEmail
	StateRegistrantOrganization
	StateRegistrantHost
	StateRemoveRegistrant
)

// Active list screens, for dispatching the shared filter commands.
const (
	listNone = iota
	listCommittees
	listMeetings
)

// confirmRequest is a destructive action awaiting a yes/no reply. The
// continuation runs with the user's answer.
type confirmRequest struct {
	message string
	resolve func(confirmed bool)
}

// Session is the per-user conversation state: the wizard position, the form
// snapshot, the pending-change ledgers, and the active list view. One user,
// one session, single writer.
type Session struct {
	State int

	Wizard        *wizard.Wizard
	CommitteeForm *wizard.CommitteeForm
	MeetingForm   *wizard.MeetingForm

	Members     *ledger.Ledger[model.Member]
	Registrants *ledger.Ledger[model.Registrant]

	// Ids of the entity being edited (edit mode) or just created (create
	// mode, once the parent has been persisted).
	CommitteeID string
	MeetingID   string

	// In-progress child-entity sub-form.
	draftMember         model.Member
	draftRegistrant     model.Registrant
	editingMemberID     string
	editingRegistrantID string

	Committees  *view.CommitteeView
	MeetingList *view.MeetingView

	// activeList is the list screen the shared /search and /clearfilters
	// commands apply to.
	activeList int

	pendingConfirm *confirmRequest
}

// Reset returns the session to idle, dropping any wizard in progress. The
// loaded list views survive so filters keep working after a flow ends.
func (s *Session) Reset() {
	*s = Session{
		Committees:  s.Committees,
		MeetingList: s.MeetingList,
		activeList:  s.activeList,
	}
}

// Sessions is the table of per-user sessions. The bot dispatches updates on
// separate goroutines, so lookups are mutex-guarded; each individual
// session is only ever touched by its own user's updates.
type Sessions struct {
	mu sync.Mutex
	m  map[int64]*Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]*Session)}
}

// Get returns the session for userID, creating it on first contact.
func (t *Sessions) Get(userID int64) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.m[userID]
	if !ok {
		s = &Session{}
		t.m[userID] = s
	}
	return s
}
