package repo

import (
	"context"
	"fmt"
	"sync"

	"commbot/model"
)

// MemStore is an in-memory Store used by tests and local development. A
// FailHook, when set, is consulted before every operation so tests can
// inject per-operation backend failures.
type MemStore struct {
	mu   sync.Mutex
	seq  int
	data struct {
		committees  map[string]model.Committee
		members     map[string]model.Member
		meetings    map[string]model.Meeting
		registrants map[string]model.Registrant
	}

	// FailHook receives (op, collection, payload-or-id) and may return the
	// error the operation should fail with.
	FailHook func(op, collection string, arg any) error
}

func NewMemStore() *MemStore {
	s := &MemStore{}
	s.data.committees = make(map[string]model.Committee)
	s.data.members = make(map[string]model.Member)
	s.data.meetings = make(map[string]model.Meeting)
	s.data.registrants = make(map[string]model.Registrant)
	return s
}

func (s *MemStore) fail(op, collection string, arg any) error {
	if s.FailHook == nil {
		return nil
	}
	return s.FailHook(op, collection, arg)
}

func (s *MemStore) nextID(collection string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", collection, s.seq)
}

func (s *MemStore) Committees() CommitteeStore   { return memCommittees{s} }
func (s *MemStore) Members() MemberStore         { return memMembers{s} }
func (s *MemStore) Meetings() MeetingStore       { return memMeetings{s} }
func (s *MemStore) Registrants() RegistrantStore { return memRegistrants{s} }

// SeedCommittee inserts a committee under a fixed id.
func (s *MemStore) SeedCommittee(c model.Committee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.committees[c.ID] = c
}

// SeedMember inserts a member under a fixed id.
func (s *MemStore) SeedMember(m model.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.members[m.ID] = m
}

// SeedMeeting inserts a meeting under a fixed id.
func (s *MemStore) SeedMeeting(m model.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.meetings[m.ID] = m
}

// SeedRegistrant inserts a registrant under a fixed id.
func (s *MemStore) SeedRegistrant(r model.Registrant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.registrants[r.ID] = r
}

type memCommittees struct{ s *MemStore }

func (c memCommittees) List(_ context.Context, projectID string) ([]model.Committee, error) {
	if err := c.s.fail("list", "committees", projectID); err != nil {
		return nil, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var out []model.Committee
	for _, v := range c.s.data.committees {
		if projectID == "" || v.ProjectID == projectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c memCommittees) Get(_ context.Context, id string) (model.Committee, error) {
	if err := c.s.fail("get", "committees", id); err != nil {
		return model.Committee{}, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	v, ok := c.s.data.committees[id]
	if !ok {
		return model.Committee{}, &StatusError{Code: 404, Err: model.ErrCommitteeNotFound}
	}
	return v, nil
}

func (c memCommittees) Create(_ context.Context, v model.Committee) (string, error) {
	if err := c.s.fail("create", "committees", v); err != nil {
		return "", err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	id := c.s.nextID("committee")
	v.ID = id
	c.s.data.committees[id] = v
	return id, nil
}

func (c memCommittees) Update(_ context.Context, id string, v model.Committee) error {
	if err := c.s.fail("update", "committees", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.committees[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrCommitteeNotFound}
	}
	v.ID = id
	c.s.data.committees[id] = v
	return nil
}

func (c memCommittees) Delete(_ context.Context, id string) error {
	if err := c.s.fail("delete", "committees", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.committees[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrCommitteeNotFound}
	}
	delete(c.s.data.committees, id)
	return nil
}

type memMembers struct{ s *MemStore }

func (c memMembers) List(_ context.Context, committeeID string) ([]model.Member, error) {
	if err := c.s.fail("list", "members", committeeID); err != nil {
		return nil, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var out []model.Member
	for _, v := range c.s.data.members {
		if committeeID == "" || v.CommitteeID == committeeID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c memMembers) Get(_ context.Context, id string) (model.Member, error) {
	if err := c.s.fail("get", "members", id); err != nil {
		return model.Member{}, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	v, ok := c.s.data.members[id]
	if !ok {
		return model.Member{}, &StatusError{Code: 404, Err: model.ErrMemberNotFound}
	}
	return v, nil
}

func (c memMembers) Create(_ context.Context, v model.Member) (string, error) {
	if err := c.s.fail("create", "members", v); err != nil {
		return "", err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	id := c.s.nextID("member")
	v.ID = id
	c.s.data.members[id] = v
	return id, nil
}

func (c memMembers) Update(_ context.Context, id string, v model.Member) error {
	if err := c.s.fail("update", "members", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.members[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrMemberNotFound}
	}
	v.ID = id
	c.s.data.members[id] = v
	return nil
}

func (c memMembers) Delete(_ context.Context, id string) error {
	if err := c.s.fail("delete", "members", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.members[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrMemberNotFound}
	}
	delete(c.s.data.members, id)
	return nil
}

type memMeetings struct{ s *MemStore }

func (c memMeetings) List(_ context.Context, projectID string) ([]model.Meeting, error) {
	if err := c.s.fail("list", "meetings", projectID); err != nil {
		return nil, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var out []model.Meeting
	for _, v := range c.s.data.meetings {
		if projectID == "" || v.ProjectID == projectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c memMeetings) Get(_ context.Context, id string) (model.Meeting, error) {
	if err := c.s.fail("get", "meetings", id); err != nil {
		return model.Meeting{}, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	v, ok := c.s.data.meetings[id]
	if !ok {
		return model.Meeting{}, &StatusError{Code: 404, Err: model.ErrMeetingNotFound}
	}
	return v, nil
}

func (c memMeetings) Create(_ context.Context, v model.Meeting) (string, error) {
	if err := c.s.fail("create", "meetings", v); err != nil {
		return "", err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	id := c.s.nextID("meeting")
	v.ID = id
	c.s.data.meetings[id] = v
	return id, nil
}

func (c memMeetings) Update(_ context.Context, id string, v model.Meeting) error {
	if err := c.s.fail("update", "meetings", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.meetings[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrMeetingNotFound}
	}
	v.ID = id
	c.s.data.meetings[id] = v
	return nil
}

func (c memMeetings) Delete(_ context.Context, id string) error {
	if err := c.s.fail("delete", "meetings", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.meetings[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrMeetingNotFound}
	}
	delete(c.s.data.meetings, id)
	return nil
}

type memRegistrants struct{ s *MemStore }

func (c memRegistrants) List(_ context.Context, meetingID string) ([]model.Registrant, error) {
	if err := c.s.fail("list", "registrants", meetingID); err != nil {
		return nil, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var out []model.Registrant
	for _, v := range c.s.data.registrants {
		if meetingID == "" || v.MeetingID == meetingID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c memRegistrants) Get(_ context.Context, id string) (model.Registrant, error) {
	if err := c.s.fail("get", "registrants", id); err != nil {
		return model.Registrant{}, err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	v, ok := c.s.data.registrants[id]
	if !ok {
		return model.Registrant{}, &StatusError{Code: 404, Err: model.ErrRegistrantNotFound}
	}
	return v, nil
}

func (c memRegistrants) Create(_ context.Context, v model.Registrant) (string, error) {
	if err := c.s.fail("create", "registrants", v); err != nil {
		return "", err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	id := c.s.nextID("registrant")
	v.ID = id
	c.s.data.registrants[id] = v
	return id, nil
}

func (c memRegistrants) Update(_ context.Context, id string, v model.Registrant) error {
	if err := c.s.fail("update", "registrants", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.registrants[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrRegistrantNotFound}
	}
	v.ID = id
	c.s.data.registrants[id] = v
	return nil
}

func (c memRegistrants) Delete(_ context.Context, id string) error {
	if err := c.s.fail("delete", "registrants", id); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.data.registrants[id]; !ok {
		return &StatusError{Code: 404, Err: model.ErrRegistrantNotFound}
	}
	delete(c.s.data.registrants, id)
	return nil
}
