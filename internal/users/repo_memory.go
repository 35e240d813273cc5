package users

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
	prefs map[string]Preferences
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users: make(map[string]User),
		prefs: make(map[string]Preferences),
	}
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	now := time.Now().UTC()
	if !ok {
		user.CreatedAt = now
	} else {
		user.CreatedAt = existing.CreatedAt
		if user.Email == "" {
			user.Email = existing.Email
		}
		if user.FullName == "" {
			user.FullName = existing.FullName
		}
	}
	user.UpdatedAt = now
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) ListIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemoryRepo) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	if err := ctx.Err(); err != nil {
		return Preferences{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.users[userID]; !ok {
		return Preferences{}, ErrNotFound
	}
	prefs, ok := r.prefs[userID]
	if !ok {
		return Preferences{}, ErrPreferencesNotFound
	}
	return prefs, nil
}

func (r *MemoryRepo) SavePreferences(ctx context.Context, prefs Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[prefs.UserID]; !ok {
		return ErrNotFound
	}
	prefs.UpdatedAt = time.Now().UTC()
	r.prefs[prefs.UserID] = prefs
	return nil
}
