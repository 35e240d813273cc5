package animals

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	animals map[string]Animal
	order   []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{animals: make(map[string]Animal)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, animal Animal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.animals[animal.ID]; ok {
		animal.CreatedAt = existing.CreatedAt
	} else {
		if animal.CreatedAt.IsZero() {
			animal.CreatedAt = now
		}
		r.order = append(r.order, animal.ID)
	}
	if animal.Status == "" {
		animal.Status = StatusAvailable
	}
	animal.UpdatedAt = now
	r.animals[animal.ID] = animal
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	if err := ctx.Err(); err != nil {
		return Animal{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	animal, ok := r.animals[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return animal, nil
}

func (r *MemoryRepo) GetMany(ctx context.Context, ids []string) ([]Animal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Animal, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if animal, ok := r.animals[id]; ok {
			out = append(out, animal)
		}
	}
	return out, nil
}

// ListAvailable returns available animals in insertion order.
func (r *MemoryRepo) ListAvailable(ctx context.Context) ([]Animal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Animal, 0, len(r.order))
	for _, id := range r.order {
		if animal := r.animals[id]; animal.Available() {
			out = append(out, animal)
		}
	}
	return out, nil
}
