package repo

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"commbot/model"
)

// FirebaseStore holds the Firebase app and database client and exposes one
// store per collection. Entities live in flat collections keyed by push
// ids; List fetches the collection and filters by parent id client-side.
type FirebaseStore struct {
	app    *firebase.App
	client *db.Client
}

// NewFirebaseStore connects to the Firebase Realtime Database using a
// service account key file.
func NewFirebaseStore(ctx context.Context, serviceAccountKeyPath, databaseURL string) (*FirebaseStore, error) {
	opt := option.WithCredentialsFile(serviceAccountKeyPath)
	config := &firebase.Config{DatabaseURL: databaseURL}

	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting database client: %w", err)
	}
	return &FirebaseStore{app: app, client: client}, nil
}

func (s *FirebaseStore) Committees() CommitteeStore   { return &committeeStore{s.client} }
func (s *FirebaseStore) Members() MemberStore         { return &memberStore{s.client} }
func (s *FirebaseStore) Meetings() MeetingStore       { return &meetingStore{s.client} }
func (s *FirebaseStore) Registrants() RegistrantStore { return &registrantStore{s.client} }

func pushEntity(ctx context.Context, client *db.Client, collection string, payload any) (string, error) {
	newRef, err := client.NewRef(collection).Push(ctx, payload)
	if err != nil {
		return "", &StatusError{Code: 502, Err: fmt.Errorf("error creating %s entry: %w", collection, err)}
	}
	return newRef.Key, nil
}

func setEntity(ctx context.Context, client *db.Client, collection, id string, payload any) error {
	if err := client.NewRef(collection).Child(id).Set(ctx, payload); err != nil {
		return &StatusError{Code: 502, Err: fmt.Errorf("error updating %s/%s: %w", collection, id, err)}
	}
	return nil
}

func deleteEntity(ctx context.Context, client *db.Client, collection, id string) error {
	if err := client.NewRef(collection).Child(id).Delete(ctx); err != nil {
		return &StatusError{Code: 502, Err: fmt.Errorf("error deleting %s/%s: %w", collection, id, err)}
	}
	return nil
}

type committeeStore struct{ client *db.Client }

func (s *committeeStore) List(ctx context.Context, projectID string) ([]model.Committee, error) {
	var all map[string]model.Committee
	if err := s.client.NewRef("committees").Get(ctx, &all); err != nil {
		return nil, &StatusError{Code: 502, Err: fmt.Errorf("error listing committees: %w", err)}
	}
	var out []model.Committee
	for key, c := range all {
		c.ID = key
		if projectID == "" || c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *committeeStore) Get(ctx context.Context, id string) (model.Committee, error) {
	var c model.Committee
	if err := s.client.NewRef("committees").Child(id).Get(ctx, &c); err != nil {
		return model.Committee{}, &StatusError{Code: 502, Err: fmt.Errorf("error reading committee %s: %w", id, err)}
	}
	// The realtime database unmarshals a missing node into the zero value.
	if c.Name == "" && c.Category == "" {
		return model.Committee{}, &StatusError{Code: 404, Err: model.ErrCommitteeNotFound}
	}
	c.ID = id
	return c, nil
}

func (s *committeeStore) Create(ctx context.Context, c model.Committee) (string, error) {
	return pushEntity(ctx, s.client, "committees", c)
}

func (s *committeeStore) Update(ctx context.Context, id string, c model.Committee) error {
	c.ID = id
	return setEntity(ctx, s.client, "committees", id, c)
}

func (s *committeeStore) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, s.client, "committees", id)
}

type memberStore struct{ client *db.Client }

func (s *memberStore) List(ctx context.Context, committeeID string) ([]model.Member, error) {
	var all map[string]model.Member
	if err := s.client.NewRef("members").Get(ctx, &all); err != nil {
		return nil, &StatusError{Code: 502, Err: fmt.Errorf("error listing members: %w", err)}
	}
	var out []model.Member
	for key, m := range all {
		m.ID = key
		if committeeID == "" || m.CommitteeID == committeeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memberStore) Get(ctx context.Context, id string) (model.Member, error) {
	var m model.Member
	if err := s.client.NewRef("members").Child(id).Get(ctx, &m); err != nil {
		return model.Member{}, &StatusError{Code: 502, Err: fmt.Errorf("error reading member %s: %w", id, err)}
	}
	if m.Email == "" && m.FirstName == "" {
		return model.Member{}, &StatusError{Code: 404, Err: model.ErrMemberNotFound}
	}
	m.ID = id
	return m, nil
}

func (s *memberStore) Create(ctx context.Context, m model.Member) (string, error) {
	return pushEntity(ctx, s.client, "members", m)
}

func (s *memberStore) Update(ctx context.Context, id string, m model.Member) error {
	m.ID = id
	return setEntity(ctx, s.client, "members", id, m)
}

func (s *memberStore) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, s.client, "members", id)
}

type meetingStore struct{ client *db.Client }

func (s *meetingStore) List(ctx context.Context, projectID string) ([]model.Meeting, error) {
	var all map[string]model.Meeting
	if err := s.client.NewRef("meetings").Get(ctx, &all); err != nil {
		return nil, &StatusError{Code: 502, Err: fmt.Errorf("error listing meetings: %w", err)}
	}
	var out []model.Meeting
	for key, m := range all {
		m.ID = key
		if projectID == "" || m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *meetingStore) Get(ctx context.Context, id string) (model.Meeting, error) {
	var m model.Meeting
	if err := s.client.NewRef("meetings").Child(id).Get(ctx, &m); err != nil {
		return model.Meeting{}, &StatusError{Code: 502, Err: fmt.Errorf("error reading meeting %s: %w", id, err)}
	}
	if m.Title == "" {
		return model.Meeting{}, &StatusError{Code: 404, Err: model.ErrMeetingNotFound}
	}
	m.ID = id
	return m, nil
}

func (s *meetingStore) Create(ctx context.Context, m model.Meeting) (string, error) {
	return pushEntity(ctx, s.client, "meetings", m)
}

func (s *meetingStore) Update(ctx context.Context, id string, m model.Meeting) error {
	m.ID = id
	return setEntity(ctx, s.client, "meetings", id, m)
}

func (s *meetingStore) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, s.client, "meetings", id)
}

type registrantStore struct{ client *db.Client }

func (s *registrantStore) List(ctx context.Context, meetingID string) ([]model.Registrant, error) {
	var all map[string]model.Registrant
	if err := s.client.NewRef("registrants").Get(ctx, &all); err != nil {
		return nil, &StatusError{Code: 502, Err: fmt.Errorf("error listing registrants: %w", err)}
	}
	var out []model.Registrant
	for key, r := range all {
		r.ID = key
		if meetingID == "" || r.MeetingID == meetingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *registrantStore) Get(ctx context.Context, id string) (model.Registrant, error) {
	var r model.Registrant
	if err := s.client.NewRef("registrants").Child(id).Get(ctx, &r); err != nil {
		return model.Registrant{}, &StatusError{Code: 502, Err: fmt.Errorf("error reading registrant %s: %w", id, err)}
	}
	if r.Email == "" && r.FirstName == "" {
		return model.Registrant{}, &StatusError{Code: 404, Err: model.ErrRegistrantNotFound}
	}
	r.ID = id
	return r, nil
}

func (s *registrantStore) Create(ctx context.Context, r model.Registrant) (string, error) {
	return pushEntity(ctx, s.client, "registrants", r)
}

func (s *registrantStore) Update(ctx context.Context, id string, r model.Registrant) error {
	r.ID = id
	return setEntity(ctx, s.client, "registrants", id, r)
}

func (s *registrantStore) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, s.client, "registrants", id)
}
