package repo

import (
	"context"
	"sync"

	dom "Renewals/internal/domain"
)

// MemoryRepo implements ChecklistRepo with an in-process map. Used in
// tests and when the service runs without a database.
type MemoryRepo struct {
	mu         sync.RWMutex
	checklists map[string]dom.Checklist
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{checklists: make(map[string]dom.Checklist)}
}

func (r *MemoryRepo) Load(ctx context.Context, policyKey string) (dom.Checklist, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	cl, ok := r.checklists[policyKey]
	if !ok {
		return nil, ErrNotFound
	}
	return cl.Clone(), nil
}

func (r *MemoryRepo) Save(ctx context.Context, policyKey string, cl dom.Checklist) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checklists[policyKey] = cl.Clone()
	return nil
}

func (r *MemoryRepo) Clear(ctx context.Context, policyKey string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checklists, policyKey)
	return nil
}

func (r *MemoryRepo) Keys(ctx context.Context) ([]string, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.checklists))
	for k := range r.checklists {
		keys = append(keys, k)
	}
	return keys, nil
}
