package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"Renewals/internal/cache"
	dom "Renewals/internal/domain"
	"Renewals/internal/events"
	"Renewals/internal/repo"

	"golang.org/x/sync/singleflight"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrLabelRequired = errors.New("label is required")
)

// ChecklistService is the only writer of the checklist store. Every
// entry point normalizes before persisting or returning data, so the
// completed flag can never drift from the timestamp.
type ChecklistService struct {
	repo     repo.ChecklistRepo
	cache    *cache.ChecklistCache
	notifier events.Notifier
	stats    *Stats
	sf       singleflight.Group
}

// NewChecklistService creates a ChecklistService. If c is nil, caching
// is disabled. If n is nil, finalization events go to the log.
func NewChecklistService(r repo.ChecklistRepo, c *cache.ChecklistCache, n events.Notifier, st *Stats) *ChecklistService {
	if n == nil {
		n = events.LogNotifier{}
	}
	if st == nil {
		st = NewStats()
	}
	return &ChecklistService{repo: r, cache: c, notifier: n, stats: st}
}

// Get returns the policy's normalized checklist. Absent or unparseable
// stored data falls back to the default template; this path never fails
// the caller.
func (s *ChecklistService) Get(ctx context.Context, policyKey string) dom.Checklist {
	if s.cache != nil {
		v, _, _ := s.sf.Do("get:"+policyKey, func() (interface{}, error) {
			if cl, err := s.cache.Get(ctx, policyKey); err == nil && cl != nil {
				return dom.Normalize(cl), nil
			}
			cl := s.loadNormalized(ctx, policyKey)
			_ = s.cache.Set(ctx, policyKey, cl)
			return cl, nil
		})
		// Every singleflight waiter shares the same slice; hand each
		// caller its own copy, like the repo layer does.
		return v.(dom.Checklist).Clone()
	}
	return s.loadNormalized(ctx, policyKey)
}

// Toggle flips a task's completion. Pending tasks get a fresh timestamp;
// completed tasks have it cleared to empty, never restored to a prior
// value. Flipping the terminal template task emits the finalization
// event with the given policy reference.
func (s *ChecklistService) Toggle(ctx context.Context, policyKey string, taskID int, ref dom.PolicyRef) (dom.Checklist, error) {
	cl, err := s.loadChecklist(ctx, policyKey)
	if err != nil {
		return nil, err
	}
	i := cl.IndexOf(taskID)
	if i < 0 {
		log.Printf("warn: toggle: task %d not on checklist %q", taskID, policyKey)
		return nil, ErrTaskNotFound
	}
	if cl[i].Done() {
		cl[i].CompletedAt = ""
	} else {
		cl[i].CompletedAt = time.Now().UTC().Format(time.RFC3339)
	}
	cl = dom.Normalize(cl)
	if err := s.repo.Save(ctx, policyKey, cl); err != nil {
		return nil, err
	}
	s.invalidate(ctx, policyKey)
	if taskID == dom.FinalizeTaskID {
		ev := events.Event{PolicyKey: policyKey, Finalized: cl[i].Completed, PolicyReference: ref}
		if err := s.notifier.ChecklistFinalized(ctx, ev); err != nil {
			log.Printf("warn: finalized notification for %q: %v", policyKey, err)
		}
	}
	return cl, nil
}

// SetNotes updates a task's free-text notes. Completion state is
// untouched. Unknown task ids are reported, not fatal.
func (s *ChecklistService) SetNotes(ctx context.Context, policyKey string, taskID int, text string) (dom.Checklist, error) {
	cl, err := s.loadChecklist(ctx, policyKey)
	if err != nil {
		return nil, err
	}
	i := cl.IndexOf(taskID)
	if i < 0 {
		log.Printf("warn: set notes: task %d not on checklist %q", taskID, policyKey)
		return nil, ErrTaskNotFound
	}
	cl[i].Notes = text
	cl = dom.Normalize(cl)
	if err := s.repo.Save(ctx, policyKey, cl); err != nil {
		return nil, err
	}
	s.invalidate(ctx, policyKey)
	return cl, nil
}

// Reset drops the stored checklist so the policy starts over from the
// default template. Destructive; the HTTP layer requires an explicit
// confirmation before calling this.
func (s *ChecklistService) Reset(ctx context.Context, policyKey string) (dom.Checklist, error) {
	if err := s.repo.Clear(ctx, policyKey); err != nil {
		return nil, err
	}
	s.invalidate(ctx, policyKey)
	return dom.DefaultTemplate(), nil
}

// AddTask appends a new pending task with the next free id.
func (s *ChecklistService) AddTask(ctx context.Context, policyKey string, label string) (dom.Checklist, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrLabelRequired
	}
	cl, err := s.loadChecklist(ctx, policyKey)
	if err != nil {
		return nil, err
	}
	cl = append(cl, dom.Task{ID: cl.MaxID() + 1, Label: label})
	cl = dom.Normalize(cl)
	if err := s.repo.Save(ctx, policyKey, cl); err != nil {
		return nil, err
	}
	s.invalidate(ctx, policyKey)
	return cl, nil
}

// Revalidate reloads the durable checklist, heals any drift a writer
// outside this service introduced, persists the healed copy when it
// changed, and refreshes the cache. Callers trigger it on lifecycle
// events (view shown, focus returned, external-mutation notification)
// instead of polling.
func (s *ChecklistService) Revalidate(ctx context.Context, policyKey string) (dom.Checklist, error) {
	stored, err := s.repo.Load(ctx, policyKey)
	if err != nil {
		// Nothing durable to heal; make sure no stale cache survives.
		s.invalidate(ctx, policyKey)
		if errors.Is(err, repo.ErrCorrupted) {
			log.Printf("warn: revalidate %q: %v (using default template)", policyKey, err)
		}
		return dom.DefaultTemplate(), nil
	}
	n := dom.CountViolations(stored)
	normalized := dom.Normalize(stored)
	if n > 0 {
		s.stats.violationsCorrected.Add(int64(n))
		s.stats.checklistsHealed.Add(1)
		log.Printf("revalidate: healed checklist %q (%d mismatches)", policyKey, n)
		if err := s.repo.Save(ctx, policyKey, normalized); err != nil {
			return nil, err
		}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, policyKey, normalized)
	}
	return normalized, nil
}

// Stats returns a snapshot of the reconciliation counters.
func (s *ChecklistService) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}

// loadChecklist returns the normalized durable checklist. Absence and
// corruption fall back to the default template; any other load error
// propagates, so a mutation can never overwrite real progress with a
// template built during a transient outage.
func (s *ChecklistService) loadChecklist(ctx context.Context, policyKey string) (dom.Checklist, error) {
	cl, err := s.repo.Load(ctx, policyKey)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			// Lazy creation: first access seeds from the template.
			return dom.DefaultTemplate(), nil
		case errors.Is(err, repo.ErrCorrupted):
			log.Printf("warn: checklist %q: %v (using default template)", policyKey, err)
			return dom.DefaultTemplate(), nil
		default:
			return nil, err
		}
	}
	if n := dom.CountViolations(cl); n > 0 {
		s.stats.violationsCorrected.Add(int64(n))
		log.Printf("warn: checklist %q: corrected %d completed/timestamp mismatches", policyKey, n)
	}
	return dom.Normalize(cl), nil
}

// loadNormalized is the read-path variant: it recovers from every load
// error so the checklist view always renders something.
func (s *ChecklistService) loadNormalized(ctx context.Context, policyKey string) dom.Checklist {
	cl, err := s.loadChecklist(ctx, policyKey)
	if err != nil {
		log.Printf("warn: checklist load %q: %v (using default template)", policyKey, err)
		return dom.DefaultTemplate()
	}
	return cl
}

func (s *ChecklistService) invalidate(ctx context.Context, policyKey string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, policyKey)
	}
}
