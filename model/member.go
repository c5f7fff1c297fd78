package model

// MemberRole is the role a member holds on a committee.
type MemberRole string

const (
	RoleChair     MemberRole = "chair"
	RoleViceChair MemberRole = "vice-chair"
	RoleMember    MemberRole = "member"
	RoleObserver  MemberRole = "observer"
)

// MemberStatus marks whether a member currently participates.
type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"
)

type Member struct {
	ID           string       `json:"id"`
	CommitteeID  string       `json:"committeeID"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	Email        string       `json:"email"`
	Organization string       `json:"organization"`
	Role         MemberRole   `json:"role"`
	Status       MemberStatus `json:"status"`
	AvatarURL    string       `json:"avatarURL"`
}

// FullName returns "First Last", tolerating either part being empty.
func (m Member) FullName() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	default:
		return m.FirstName + " " + m.LastName
	}
}

// Registrant is a person signed up for a meeting.
type Registrant struct {
	ID           string `json:"id"`
	MeetingID    string `json:"meetingID"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
	Host         bool   `json:"host"`
}
