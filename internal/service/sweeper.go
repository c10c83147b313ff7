package service

import (
	"context"
	"log"
	"time"

	"Renewals/internal/cache"
	dom "Renewals/internal/domain"
	"Renewals/internal/repo"
)

// Sweeper periodically re-checks every stored checklist and heals
// completed/timestamp drift introduced by writers outside this service.
// It is the backstop behind the event-driven Revalidate path, so the
// interval is minutes, not a hot loop.
type Sweeper struct {
	repo     repo.ChecklistRepo
	cache    *cache.ChecklistCache
	stats    *Stats
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSweeper creates a Sweeper. cache may be nil.
func NewSweeper(r repo.ChecklistRepo, c *cache.ChecklistCache, st *Stats, interval time.Duration) *Sweeper {
	if st == nil {
		st = NewStats()
	}
	return &Sweeper{repo: r, cache: c, stats: st, interval: interval}
}

// Start launches the background sweep loop.
func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
}

// Stop cancels the loop and waits for it to exit, bounded by ctx.
func (s *Sweeper) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Printf("warn: checklist sweep: %v", err)
			}
		}
	}
}

// Sweep runs a single pass over all stored checklists. Exported so
// lifecycle events and tests can trigger a pass directly.
func (s *Sweeper) Sweep(ctx context.Context) error {
	keys, err := s.repo.Keys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		cl, err := s.repo.Load(ctx, k)
		if err != nil {
			// Corrupt rows fall back to the template on the read path;
			// nothing durable to heal here.
			continue
		}
		n := dom.CountViolations(cl)
		if n == 0 {
			continue
		}
		if err := s.repo.Save(ctx, k, dom.Normalize(cl)); err != nil {
			log.Printf("warn: sweep: save healed checklist %q: %v", k, err)
			continue
		}
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, k)
		}
		s.stats.violationsCorrected.Add(int64(n))
		s.stats.checklistsHealed.Add(1)
		log.Printf("sweep: healed checklist %q (%d mismatches)", k, n)
	}
	s.stats.sweepsRun.Add(1)
	return nil
}
