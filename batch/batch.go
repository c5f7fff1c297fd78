// Package batch turns a pending-change record into independent backend
// operations and runs them with aggregated success/failure reporting. A
// failing operation contributes to the failure count; it never aborts the
// rest of the batch.
package batch

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Operation is one independent backend call, labeled for reporting.
type Operation struct {
	// Type labels the operation in results, e.g. "member.add".
	Type string
	Run  func(ctx context.Context) error
}

// Result is the per-operation contribution to the batch summary. Exactly
// one of Success/Failed is 1.
type Result struct {
	Type    string
	Success int
	Failed  int
}

// Summary aggregates a whole batch. TotalSuccess+TotalFailed always equals
// TotalOperations.
type Summary struct {
	TotalOperations int
	TotalSuccess    int
	TotalFailed     int
	Results         []Result
}

// Outcome is the user-facing classification of a finished batch.
type Outcome int

const (
	AllSucceeded Outcome = iota
	PartialSuccess
	AllFailed
)

// Outcome classifies the summary. An empty batch counts as all-succeeded.
func (s Summary) Outcome() Outcome {
	switch {
	case s.TotalFailed == 0:
		return AllSucceeded
	case s.TotalSuccess == 0:
		return AllFailed
	default:
		return PartialSuccess
	}
}

func settle(ctx context.Context, op Operation) Result {
	if err := op.Run(ctx); err != nil {
		log.Warn().Err(err).Str("op", op.Type).Msg("batch operation failed")
		return Result{Type: op.Type, Failed: 1}
	}
	return Result{Type: op.Type, Success: 1}
}

func summarize(results []Result) Summary {
	s := Summary{TotalOperations: len(results), Results: results}
	for _, r := range results {
		s.TotalSuccess += r.Success
		s.TotalFailed += r.Failed
	}
	return s
}

// RunSequential executes the operations in slice order, each one fully
// settling (including its own failure capture) before the next starts.
func RunSequential(ctx context.Context, ops []Operation) Summary {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		results = append(results, settle(ctx, op))
	}
	return summarize(results)
}

// RunParallel issues all operations concurrently and returns once every one
// has settled. No ordering holds between operations.
func RunParallel(ctx context.Context, ops []Operation) Summary {
	results := make([]Result, len(ops))
	g, gctx := errgroup.WithContext(ctx)
	for i, op := range ops {
		g.Go(func() error {
			results[i] = settle(gctx, op)
			return nil
		})
	}
	// Workers never return errors; Wait only fences completion.
	_ = g.Wait()
	return summarize(results)
}
