package handler

import (
	"context"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commbot/model"
	"commbot/repo"
)

func seedCommittees(store *repo.MemStore) {
	store.SeedCommittee(model.Committee{ID: "c1", Name: "Engineering WG", Category: model.CategoryTechnical, EnableVoting: true})
	store.SeedCommittee(model.Committee{ID: "c2", Name: "Marketing", Category: model.CategoryMarketing, EnableVoting: true})
	store.SeedCommittee(model.Committee{ID: "c3", Name: "Eng Infra", Category: model.CategoryTechnical})
}

func TestCommitteeListFilterCommands(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemStore()
	seedCommittees(store)
	h, _, _ := newTestHandler(store)
	s := h.sessions.Get(1)

	reply := h.handleIdle(ctx, 42, s, "/committees")
	assert.Contains(t, reply, "Engineering WG")
	assert.Contains(t, reply, "Marketing")

	reply = h.handleIdle(ctx, 42, s, "/search eng")
	assert.Contains(t, reply, "Engineering WG")
	assert.Contains(t, reply, "Eng Infra")
	assert.NotContains(t, reply, "Marketing")

	reply = h.handleIdle(ctx, 42, s, "/category Technical")
	assert.NotContains(t, reply, "Marketing")

	reply = h.handleIdle(ctx, 42, s, "/voting on")
	assert.Contains(t, reply, "Engineering WG")
	assert.NotContains(t, reply, "Eng Infra", "voting filter stacks on search and category")

	reply = h.handleIdle(ctx, 42, s, "/clearfilters")
	assert.Contains(t, reply, "Marketing")
}

func TestFilterCommandsRequireLoadedList(t *testing.T) {
	store := repo.NewMemStore()
	h, _, _ := newTestHandler(store)
	s := h.sessions.Get(1)

	reply := h.handleIdle(context.Background(), 42, s, "/search eng")
	assert.Contains(t, reply, "/committees")
}

func TestMeetingListFilterCommands(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemStore()
	store.SeedMeeting(model.Meeting{ID: "mt1", Title: "Weekly sync", Visibility: model.VisibilityPublic})
	store.SeedMeeting(model.Meeting{ID: "mt2", Title: "Board sync", Visibility: model.VisibilityPrivate})
	store.SeedMeeting(model.Meeting{ID: "mt3", Title: "Planning", Visibility: model.VisibilityPublic})
	h, _, _ := newTestHandler(store)
	s := h.sessions.Get(1)

	reply := h.handleIdle(ctx, 42, s, "/meetings")
	assert.Contains(t, reply, "Weekly sync")
	assert.Contains(t, reply, "Planning")

	reply = h.handleIdle(ctx, 42, s, "/search sync")
	assert.Contains(t, reply, "Weekly sync")
	assert.Contains(t, reply, "Board sync")
	assert.NotContains(t, reply, "Planning")

	reply = h.handleIdle(ctx, 42, s, "/visibility public")
	assert.Contains(t, reply, "Weekly sync")
	assert.NotContains(t, reply, "Board sync", "visibility filter stacks on search")

	reply = h.handleIdle(ctx, 42, s, "/clearfilters")
	assert.Contains(t, reply, "Planning")
}

func TestSearchAppliesToMostRecentlyLoadedList(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemStore()
	seedCommittees(store)
	store.SeedMeeting(model.Meeting{ID: "mt1", Title: "Engine room", Visibility: model.VisibilityPublic})
	h, _, _ := newTestHandler(store)
	s := h.sessions.Get(1)

	h.handleIdle(ctx, 42, s, "/committees")
	h.handleIdle(ctx, 42, s, "/meetings")
	reply := h.handleIdle(ctx, 42, s, "/search eng")
	assert.Contains(t, reply, "Engine room")
	assert.NotContains(t, reply, "Engineering WG")
}

func TestHandleIgnoresMessagesWithoutSender(t *testing.T) {
	store := repo.NewMemStore()
	h, notifier, _ := newTestHandler(store)

	// Channel posts carry no sender; the update is dropped, not dispatched.
	h.Handle(context.Background(), nil, &models.Update{
		Message: &models.Message{Chat: models.Chat{ID: 7}, Text: "/help"},
	})
	assert.Empty(t, notifier.sent)
}

func TestDeleteCommitteeConfirmFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed", func(t *testing.T) {
		store := repo.NewMemStore()
		seedCommittees(store)
		h, notifier, nav := newTestHandler(store)
		s := h.sessions.Get(1)

		reply := h.handleIdle(ctx, 42, s, "/deletecommittee c1")
		assert.Empty(t, reply)
		require.NotNil(t, s.pendingConfirm)

		h.handleConfirmReply(ctx, 42, s, "yes")
		assert.Nil(t, s.pendingConfirm)
		assert.Equal(t, "Committee deleted", notifier.last(t).summary)
		assert.Equal(t, []string{"committees"}, nav.routes)

		_, err := store.Committees().Get(ctx, "c1")
		assert.Error(t, err)
	})

	t.Run("anything else cancels", func(t *testing.T) {
		store := repo.NewMemStore()
		seedCommittees(store)
		h, notifier, nav := newTestHandler(store)
		s := h.sessions.Get(1)

		h.handleIdle(ctx, 42, s, "/deletecommittee c1")
		h.handleConfirmReply(ctx, 42, s, "nah")

		assert.Equal(t, "Cancelled", notifier.last(t).summary)
		assert.Empty(t, nav.routes)
		_, err := store.Committees().Get(ctx, "c1")
		assert.NoError(t, err, "nothing deleted without confirmation")
	})
}

func TestMembersCommandSortsByFirstName(t *testing.T) {
	store := repo.NewMemStore()
	store.SeedMember(model.Member{ID: "m1", CommitteeID: "c1", FirstName: "Grace", Email: "g@x.org", Role: model.RoleChair})
	store.SeedMember(model.Member{ID: "m2", CommitteeID: "c1", FirstName: "Ada", Email: "a@x.org", Role: model.RoleMember})
	h, _, _ := newTestHandler(store)
	s := h.sessions.Get(1)

	reply := h.handleIdle(context.Background(), 42, s, "/members c1")
	ada := strings.Index(reply, "Ada")
	grace := strings.Index(reply, "Grace")
	require.NotEqual(t, -1, ada)
	require.NotEqual(t, -1, grace)
	assert.Less(t, ada, grace)
}

func TestUnknownCommand(t *testing.T) {
	store := repo.NewMemStore()
	h, _, _ := newTestHandler(store)
	s := h.sessions.Get(1)

	reply := h.handleIdle(context.Background(), 42, s, "/frobnicate")
	assert.Contains(t, reply, "didn't understand")
}
