package repair

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// maxPasses bounds the apply loop. Each pass removes at least one overlap,
// so the bound only trips on a repository that keeps reporting the same
// pairs.
const maxPasses = 10000

// Service repairs overlapping stored activities in batch. This is a
// different, more elaborate policy than the write-time resolver: the
// write-time path only ever truncates the earlier record, while the batch
// path prefers dropping idle records, removing contained records, and
// merging same-app records. The two strategies stay separate because they
// run in different contexts with different guarantees.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new repair service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// Resolve plans the actions for one overlapping pair. Strategy order:
//
//  1. one side idle: delete the idle side
//  2. first contains second: delete second
//  3. second contains first: delete first
//  4. same app: extend first to cover both, delete second
//  5. otherwise: shorten first to end when second starts, deleting it when
//     nothing would remain
func Resolve(pair OverlapPair) []Action {
	first, second := pair.First, pair.Second

	switch {
	case first.IsIdle && !second.IsIdle:
		return []Action{{
			Op:         OpDelete,
			ActivityID: first.ID,
			Reason:     fmt.Sprintf("idle, overlaps %ds with #%d", pair.OverlapSeconds(), second.ID),
		}}

	case second.IsIdle && !first.IsIdle:
		return []Action{{
			Op:         OpDelete,
			ActivityID: second.ID,
			Reason:     fmt.Sprintf("idle, overlaps %ds with #%d", pair.OverlapSeconds(), first.ID),
		}}

	case !first.Start.After(second.Start) && !first.End().Before(second.End()):
		return []Action{{
			Op:         OpDelete,
			ActivityID: second.ID,
			Reason:     fmt.Sprintf("contained within #%d", first.ID),
		}}

	case !second.Start.After(first.Start) && !second.End().Before(first.End()):
		return []Action{{
			Op:         OpDelete,
			ActivityID: first.ID,
			Reason:     fmt.Sprintf("contained within #%d", second.ID),
		}}

	case first.AppName == second.AppName:
		end := first.End()
		if second.End().After(end) {
			end = second.End()
		}
		newDuration := int(end.Sub(first.Start).Seconds())
		return []Action{
			{
				Op:          OpSetDuration,
				ActivityID:  first.ID,
				NewDuration: newDuration,
				Reason:      fmt.Sprintf("merged with #%d (same app %s)", second.ID, first.AppName),
			},
			{
				Op:         OpDelete,
				ActivityID: second.ID,
				Reason:     fmt.Sprintf("merged into #%d", first.ID),
			},
		}

	default:
		newDuration := int(second.Start.Sub(first.Start).Seconds())
		if newDuration > 0 {
			return []Action{{
				Op:          OpSetDuration,
				ActivityID:  first.ID,
				NewDuration: newDuration,
				Reason:      fmt.Sprintf("shortened to end when #%d starts", second.ID),
			}}
		}
		return []Action{{
			Op:         OpDelete,
			ActivityID: first.ID,
			Reason:     "nothing remains after truncation",
		}}
	}
}

// Cleanup repairs all overlaps. In dry-run mode it plans actions for every
// currently visible pair without touching the store. In apply mode it
// resolves one pair at a time and re-scans, since each mutation can change
// the remaining overlap set.
func (s *Service) Cleanup(ctx context.Context, dryRun bool) ([]Action, error) {
	if dryRun {
		pairs, err := s.repo.FindOverlapPairs(ctx)
		if err != nil {
			return nil, fmt.Errorf("finding overlaps: %w", err)
		}
		var planned []Action
		for _, pair := range pairs {
			planned = append(planned, Resolve(pair)...)
		}
		return planned, nil
	}

	var applied []Action
	for pass := 0; pass < maxPasses; pass++ {
		pairs, err := s.repo.FindOverlapPairs(ctx)
		if err != nil {
			return applied, fmt.Errorf("finding overlaps: %w", err)
		}
		if len(pairs) == 0 {
			s.logger.Info("overlap cleanup finished", "actions", len(applied))
			return applied, nil
		}

		for _, action := range Resolve(pairs[0]) {
			if err := s.apply(ctx, action); err != nil {
				return applied, err
			}
			applied = append(applied, action)
		}
	}

	return applied, fmt.Errorf("overlap cleanup did not converge after %d passes", maxPasses)
}

func (s *Service) apply(ctx context.Context, action Action) error {
	switch action.Op {
	case OpSetDuration:
		if err := s.repo.SetDuration(ctx, action.ActivityID, action.NewDuration); err != nil {
			return fmt.Errorf("updating activity %d: %w", action.ActivityID, err)
		}
	case OpDelete:
		if err := s.repo.Delete(ctx, action.ActivityID); err != nil {
			return fmt.Errorf("deleting activity %d: %w", action.ActivityID, err)
		}
	}
	s.logger.Debug("applied repair action",
		"op", string(action.Op), "activity_id", action.ActivityID, "reason", action.Reason)
	return nil
}
