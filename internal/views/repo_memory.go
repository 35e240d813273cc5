package views

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	views []View
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Append(ctx context.Context, view View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]View, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]View, 0)
	for _, v := range r.views {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	r.mu.RUnlock()

	// Later appends win ties on equal timestamps.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ViewedAt.After(out[j].ViewedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) CountByAnimal(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, v := range r.views {
		counts[v.AnimalID]++
	}
	return counts, nil
}
