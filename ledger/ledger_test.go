package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type member struct {
	ID    string
	Name  string
	Email string
}

func newTestLedger() *Ledger[member] {
	return New(
		func(m member) string { return m.ID },
		func(m member, id string) member { m.ID = id; return m },
	)
}

func TestDiffBuckets(t *testing.T) {
	l := newTestLedger()
	l.Seed([]member{
		{ID: "m1", Name: "Ada"},
		{ID: "m2", Name: "Grace"},
		{ID: "m3", Name: "Edsger"},
	})

	l.Add(member{Name: "Barbara"})
	require.NoError(t, l.Update("m1", member{ID: "m1", Name: "Ada L", Email: "ada@example.org"}))
	require.NoError(t, l.Remove("m3"))

	ch := l.Diff()
	require.Len(t, ch.ToAdd, 1)
	require.Len(t, ch.ToUpdate, 1)
	require.Len(t, ch.ToDelete, 1)

	assert.Equal(t, "Barbara", ch.ToAdd[0].Name)
	assert.Equal(t, "m1", ch.ToUpdate[0].ID)
	assert.Equal(t, []string{"m3"}, ch.ToDelete)
}

func TestNewThenRemovedIsDiscarded(t *testing.T) {
	l := newTestLedger()
	l.Seed([]member{{ID: "m1", Name: "Ada"}})

	id := l.Add(member{Name: "Barbara"})
	require.True(t, IsTempID(id))
	require.NoError(t, l.Remove(id))

	ch := l.Diff()
	assert.Empty(t, ch.ToAdd, "discarded entity must not be added")
	assert.Empty(t, ch.ToUpdate)
	assert.Empty(t, ch.ToDelete, "discarded entity must not be recorded as a delete")
	assert.Len(t, l.Working(), 1)
}

func TestUpdateCarriesFullPayload(t *testing.T) {
	l := newTestLedger()
	l.Seed([]member{{ID: "m1", Name: "Ada", Email: "ada@example.org"}})

	// The replacement payload omits the email on purpose: the ledger must
	// store exactly what it was given, not merge fields.
	require.NoError(t, l.Update("m1", member{ID: "m1", Name: "Ada Lovelace"}))

	ch := l.Diff()
	require.Len(t, ch.ToUpdate, 1)
	assert.Equal(t, member{ID: "m1", Name: "Ada Lovelace"}, ch.ToUpdate[0].Payload)
}

func TestUpdateOfNewEntityStaysNew(t *testing.T) {
	l := newTestLedger()
	id := l.Add(member{Name: "Barbara"})

	require.NoError(t, l.Update(id, member{ID: id, Name: "Barbara Liskov"}))

	ch := l.Diff()
	require.Len(t, ch.ToAdd, 1)
	assert.Empty(t, ch.ToUpdate)
	assert.Equal(t, "Barbara Liskov", ch.ToAdd[0].Name)
}

func TestTempIDStrippedFromAdds(t *testing.T) {
	l := newTestLedger()
	l.Add(member{Name: "Barbara"})

	ch := l.Diff()
	require.Len(t, ch.ToAdd, 1)
	assert.Empty(t, ch.ToAdd[0].ID)
}

func TestIDAppearsInAtMostOneBucket(t *testing.T) {
	l := newTestLedger()
	l.Seed([]member{{ID: "m1"}, {ID: "m2"}, {ID: "m3"}})

	require.NoError(t, l.Update("m1", member{ID: "m1", Name: "changed"}))
	require.NoError(t, l.Remove("m1"))
	require.NoError(t, l.Update("m2", member{ID: "m2", Name: "changed"}))
	l.Add(member{Name: "new one"})

	ch := l.Diff()
	seen := map[string]int{}
	for _, m := range ch.ToAdd {
		seen[m.ID]++
	}
	for _, u := range ch.ToUpdate {
		seen[u.ID]++
	}
	for _, id := range ch.ToDelete {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "id %q appears in %d buckets", id, n)
	}
	assert.Contains(t, ch.ToDelete, "m1", "modified-then-removed is a delete")
}

func TestUpdateAfterRemoveRejected(t *testing.T) {
	l := newTestLedger()
	l.Seed([]member{{ID: "m1"}})
	require.NoError(t, l.Remove("m1"))
	assert.Error(t, l.Update("m1", member{ID: "m1"}))
}

func TestClearAndDirty(t *testing.T) {
	l := newTestLedger()
	l.Seed([]member{{ID: "m1"}})
	assert.False(t, l.Dirty())

	l.Add(member{Name: "x"})
	assert.True(t, l.Dirty())

	l.Clear()
	assert.False(t, l.Dirty())
	assert.Empty(t, l.Working())
}
