// Package repo is the entity data service: store interfaces the rest of the
// bot consumes, the Firebase Realtime Database implementation, and an
// in-memory fake for tests.
package repo

import (
	"context"
	"errors"
	"fmt"

	"commbot/model"
)

// StatusError carries an HTTP-like status code alongside the underlying
// backend error.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %v", e.Code, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP-like code from err, defaulting to 500.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 500
}

type CommitteeStore interface {
	List(ctx context.Context, projectID string) ([]model.Committee, error)
	Get(ctx context.Context, id string) (model.Committee, error)
	Create(ctx context.Context, c model.Committee) (string, error)
	Update(ctx context.Context, id string, c model.Committee) error
	Delete(ctx context.Context, id string) error
}

type MemberStore interface {
	List(ctx context.Context, committeeID string) ([]model.Member, error)
	Get(ctx context.Context, id string) (model.Member, error)
	Create(ctx context.Context, m model.Member) (string, error)
	Update(ctx context.Context, id string, m model.Member) error
	Delete(ctx context.Context, id string) error
}

type MeetingStore interface {
	List(ctx context.Context, projectID string) ([]model.Meeting, error)
	Get(ctx context.Context, id string) (model.Meeting, error)
	Create(ctx context.Context, m model.Meeting) (string, error)
	Update(ctx context.Context, id string, m model.Meeting) error
	Delete(ctx context.Context, id string) error
}

type RegistrantStore interface {
	List(ctx context.Context, meetingID string) ([]model.Registrant, error)
	Get(ctx context.Context, id string) (model.Registrant, error)
	Create(ctx context.Context, r model.Registrant) (string, error)
	Update(ctx context.Context, id string, r model.Registrant) error
	Delete(ctx context.Context, id string) error
}

// Store bundles every collection the bot works with.
type Store interface {
	Committees() CommitteeStore
	Members() MemberStore
	Meetings() MeetingStore
	Registrants() RegistrantStore
}
