package batch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commbot/ledger"
	"commbot/model"
	"commbot/repo"
)

func okOp(typ string) Operation {
	return Operation{Type: typ, Run: func(context.Context) error { return nil }}
}

func failOp(typ string) Operation {
	return Operation{Type: typ, Run: func(context.Context) error { return errors.New("backend says no") }}
}

func TestSummaryInvariant(t *testing.T) {
	cases := []struct {
		name string
		ops  []Operation
	}{
		{"empty", nil},
		{"all ok", []Operation{okOp("a"), okOp("b"), okOp("c")}},
		{"all fail", []Operation{failOp("a"), failOp("b")}},
		{"mixed", []Operation{okOp("a"), failOp("b"), okOp("c"), failOp("d")}},
	}
	for _, tc := range cases {
		t.Run(tc.name+" sequential", func(t *testing.T) {
			s := RunSequential(context.Background(), tc.ops)
			assert.Equal(t, s.TotalOperations, s.TotalSuccess+s.TotalFailed)
			assert.Equal(t, len(tc.ops), s.TotalOperations)
		})
		t.Run(tc.name+" parallel", func(t *testing.T) {
			s := RunParallel(context.Background(), tc.ops)
			assert.Equal(t, s.TotalOperations, s.TotalSuccess+s.TotalFailed)
			assert.Equal(t, len(tc.ops), s.TotalOperations)
		})
	}
}

func TestOutcomes(t *testing.T) {
	assert.Equal(t, AllSucceeded, RunSequential(context.Background(), []Operation{okOp("a")}).Outcome())
	assert.Equal(t, AllFailed, RunSequential(context.Background(), []Operation{failOp("a")}).Outcome())
	assert.Equal(t, PartialSuccess, RunSequential(context.Background(), []Operation{okOp("a"), failOp("b")}).Outcome())
	assert.Equal(t, AllSucceeded, RunSequential(context.Background(), nil).Outcome(), "empty batch counts as success")
}

func TestOneFailureDoesNotAbortTheBatch(t *testing.T) {
	var ran []string
	record := func(name string, err error) Operation {
		return Operation{Type: name, Run: func(context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}
	s := RunSequential(context.Background(), []Operation{
		record("first", errors.New("boom")),
		record("second", nil),
		record("third", nil),
	})
	assert.Equal(t, []string{"first", "second", "third"}, ran)
	assert.Equal(t, 2, s.TotalSuccess)
	assert.Equal(t, 1, s.TotalFailed)
}

func TestSequentialRunsInOrder(t *testing.T) {
	var order []string
	op := func(name string) Operation {
		return Operation{Type: name, Run: func(context.Context) error {
			order = append(order, name)
			return nil
		}}
	}
	RunSequential(context.Background(), []Operation{op("delete"), op("update"), op("add")})
	assert.Equal(t, []string{"delete", "update", "add"}, order)
}

func TestParallelSettlesEverything(t *testing.T) {
	var mu sync.Mutex
	ran := 0
	op := Operation{Type: "x", Run: func(context.Context) error {
		mu.Lock()
		ran++
		mu.Unlock()
		return nil
	}}
	s := RunParallel(context.Background(), []Operation{op, op, op, failOp("y")})
	assert.Equal(t, 3, ran)
	assert.Equal(t, 4, s.TotalOperations)
	assert.Equal(t, 1, s.TotalFailed)
	require.Len(t, s.Results, 4)
}

func memberChanges() ledger.Changes[model.Member] {
	return ledger.Changes[model.Member]{
		ToAdd:    []model.Member{{FirstName: "Ada"}, {FirstName: "Grace"}},
		ToUpdate: []ledger.Update[model.Member]{{ID: "m1", Payload: model.Member{ID: "m1", FirstName: "Edsger"}}},
		ToDelete: []string{"m2"},
	}
}

func TestBuildMemberOperationsOrder(t *testing.T) {
	store := repo.NewMemStore()
	store.SeedMember(model.Member{ID: "m1", CommitteeID: "c1", FirstName: "E", Email: "e@x.org"})
	store.SeedMember(model.Member{ID: "m2", CommitteeID: "c1", FirstName: "G", Email: "g@x.org"})

	ops := BuildMemberOperations("c1", memberChanges(), store.Members())
	require.Len(t, ops, 4)
	assert.Equal(t, "member.delete", ops[0].Type)
	assert.Equal(t, "member.update", ops[1].Type)
	assert.Equal(t, "member.add", ops[2].Type)
	assert.Equal(t, "member.add", ops[3].Type)

	s := RunSequential(context.Background(), ops)
	assert.Equal(t, 4, s.TotalSuccess)
	assert.Zero(t, s.TotalFailed)

	members, err := store.Members().List(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, members, 3, "1 deleted, 2 added on top of 2 seeded")
	for _, m := range members {
		assert.Equal(t, "c1", m.CommitteeID, "adds are stamped with the committee id")
	}
}

func TestBuildMemberOperationsFailureIsolation(t *testing.T) {
	store := repo.NewMemStore()
	store.FailHook = func(op, collection string, arg any) error {
		if op == "create" {
			if m, ok := arg.(model.Member); ok && m.FirstName == "Grace" {
				return &repo.StatusError{Code: 500, Err: errors.New("flaky backend")}
			}
		}
		return nil
	}
	ch := ledger.Changes[model.Member]{
		ToAdd: []model.Member{{FirstName: "Ada"}, {FirstName: "Grace"}},
	}
	s := RunSequential(context.Background(), BuildMemberOperations("c1", ch, store.Members()))
	assert.Equal(t, 1, s.TotalSuccess)
	assert.Equal(t, 1, s.TotalFailed)
	assert.Equal(t, PartialSuccess, s.Outcome())
}
