package batch

import (
	"context"

	"commbot/ledger"
	"commbot/model"
	"commbot/repo"
)

// BuildMemberOperations converts pending member changes into backend
// operations in deterministic order: deletes, then updates, then adds.
// Added members are stamped with the owning committee id.
func BuildMemberOperations(committeeID string, ch ledger.Changes[model.Member], store repo.MemberStore) []Operation {
	ops := make([]Operation, 0, len(ch.ToDelete)+len(ch.ToUpdate)+len(ch.ToAdd))
	for _, id := range ch.ToDelete {
		ops = append(ops, Operation{
			Type: "member.delete",
			Run: func(ctx context.Context) error {
				return store.Delete(ctx, id)
			},
		})
	}
	for _, up := range ch.ToUpdate {
		ops = append(ops, Operation{
			Type: "member.update",
			Run: func(ctx context.Context) error {
				return store.Update(ctx, up.ID, up.Payload)
			},
		})
	}
	for _, m := range ch.ToAdd {
		m.CommitteeID = committeeID
		ops = append(ops, Operation{
			Type: "member.add",
			Run: func(ctx context.Context) error {
				_, err := store.Create(ctx, m)
				return err
			},
		})
	}
	return ops
}

// BuildRegistrantOperations is the meeting-side twin of
// BuildMemberOperations, same delete/update/add ordering.
func BuildRegistrantOperations(meetingID string, ch ledger.Changes[model.Registrant], store repo.RegistrantStore) []Operation {
	ops := make([]Operation, 0, len(ch.ToDelete)+len(ch.ToUpdate)+len(ch.ToAdd))
	for _, id := range ch.ToDelete {
		ops = append(ops, Operation{
			Type: "registrant.delete",
			Run: func(ctx context.Context) error {
				return store.Delete(ctx, id)
			},
		})
	}
	for _, up := range ch.ToUpdate {
		ops = append(ops, Operation{
			Type: "registrant.update",
			Run: func(ctx context.Context) error {
				return store.Update(ctx, up.ID, up.Payload)
			},
		})
	}
	for _, r := range ch.ToAdd {
		r.MeetingID = meetingID
		ops = append(ops, Operation{
			Type: "registrant.add",
			Run: func(ctx context.Context) error {
				_, err := store.Create(ctx, r)
				return err
			},
		})
	}
	return ops
}
