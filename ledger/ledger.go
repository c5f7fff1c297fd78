// Package ledger accumulates pending add/update/delete operations against a
// backend collection while the user edits a local working copy. Nothing here
// talks to the network; the ledger is derived state diffed from lifecycle
// tags and cleared after a successful commit.
package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the lifecycle tag of one tracked entity.
type State string

const (
	StateExisting State = "existing"
	StateModified State = "modified"
	StateNew      State = "new"
	StateDeleted  State = "deleted"
)

// tempIDPrefix marks ids assigned locally to entities the backend has never
// seen. They are stripped before the entity is sent in a create.
const tempIDPrefix = "tmp-"

// IsTempID reports whether id was assigned locally by Add.
func IsTempID(id string) bool {
	return len(id) > len(tempIDPrefix) && id[:len(tempIDPrefix)] == tempIDPrefix
}

// Item is one entity in the working set together with its lifecycle tag.
type Item[T any] struct {
	State   State
	Payload T
}

// Update pairs an entity id with its full replacement payload. The payload
// is the entire current entity, not a field-level delta.
type Update[T any] struct {
	ID      string
	Payload T
}

// Changes is the pending-change record produced by Diff. An entity id
// appears in at most one bucket.
type Changes[T any] struct {
	ToAdd    []T
	ToUpdate []Update[T]
	ToDelete []string
}

// Empty reports whether there is nothing to commit.
func (c Changes[T]) Empty() bool {
	return len(c.ToAdd) == 0 && len(c.ToUpdate) == 0 && len(c.ToDelete) == 0
}

// Ledger tracks a working copy of one backend collection. ID access goes
// through the two accessors so the ledger stays payload-agnostic.
type Ledger[T any] struct {
	items []Item[T]
	getID func(T) string
	setID func(T, string) T
}

// New returns a ledger for entities whose id is read and written by the
// given accessors.
func New[T any](getID func(T) string, setID func(T, string) T) *Ledger[T] {
	return &Ledger[T]{getID: getID, setID: setID}
}

// Seed resets the ledger to the entities currently persisted on the
// backend, all tagged existing.
func (l *Ledger[T]) Seed(existing []T) {
	l.items = l.items[:0]
	for _, e := range existing {
		l.items = append(l.items, Item[T]{State: StateExisting, Payload: e})
	}
}

// Add records a brand-new entity and assigns it a temporary local id, which
// is returned so callers can refer to it before commit.
func (l *Ledger[T]) Add(payload T) string {
	id := tempIDPrefix + uuid.NewString()
	l.items = append(l.items, Item[T]{State: StateNew, Payload: l.setID(payload, id)})
	return id
}

// Update replaces the entity's payload wholesale. An existing entity becomes
// modified; a new one stays new. Removed entities cannot be updated.
func (l *Ledger[T]) Update(id string, payload T) error {
	for i, it := range l.items {
		if l.getID(it.Payload) != id {
			continue
		}
		switch it.State {
		case StateDeleted:
			return fmt.Errorf("entity %s is marked for deletion", id)
		case StateNew:
			l.items[i].Payload = l.setID(payload, id)
		default:
			l.items[i].State = StateModified
			l.items[i].Payload = l.setID(payload, id)
		}
		return nil
	}
	return fmt.Errorf("entity %s not tracked", id)
}

// Remove marks an entity for deletion. An entity added in this session is
// discarded outright rather than recorded as a delete.
func (l *Ledger[T]) Remove(id string) error {
	for i, it := range l.items {
		if l.getID(it.Payload) != id {
			continue
		}
		if it.State == StateNew {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return nil
		}
		l.items[i].State = StateDeleted
		return nil
	}
	return fmt.Errorf("entity %s not tracked", id)
}

// Working returns the entities as the user currently sees them, i.e.
// everything not marked for deletion.
func (l *Ledger[T]) Working() []T {
	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if it.State != StateDeleted {
			out = append(out, it.Payload)
		}
	}
	return out
}

// Get returns the current payload for id, when tracked and not removed.
func (l *Ledger[T]) Get(id string) (T, bool) {
	for _, it := range l.items {
		if l.getID(it.Payload) == id && it.State != StateDeleted {
			return it.Payload, true
		}
	}
	var zero T
	return zero, false
}

// Dirty reports whether a Diff would produce any operation.
func (l *Ledger[T]) Dirty() bool {
	return !l.Diff().Empty()
}

// Diff projects the working set into the pending-change record. Temporary
// ids are stripped from ToAdd; ToUpdate carries each entity's full current
// payload.
func (l *Ledger[T]) Diff() Changes[T] {
	var c Changes[T]
	for _, it := range l.items {
		switch it.State {
		case StateNew:
			c.ToAdd = append(c.ToAdd, l.setID(it.Payload, ""))
		case StateModified:
			c.ToUpdate = append(c.ToUpdate, Update[T]{ID: l.getID(it.Payload), Payload: it.Payload})
		case StateDeleted:
			c.ToDelete = append(c.ToDelete, l.getID(it.Payload))
		}
	}
	return c
}

// Clear drops all tracked entities, typically after a successful commit.
func (l *Ledger[T]) Clear() {
	l.items = nil
}
