package animals

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	if s == nil || s.Repo == nil {
		return Animal{}, errors.New("animals service not configured")
	}
	if strings.TrimSpace(id) == "" {
		return Animal{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Animal, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("animals service not configured")
	}
	return s.Repo.ListAvailable(ctx)
}

// Lookup returns the requested animals keyed by id. Missing ids are absent from the map.
func (s *Service) Lookup(ctx context.Context, ids []string) (map[string]Animal, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("animals service not configured")
	}
	list, err := s.Repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Animal, len(list))
	for _, a := range list {
		out[a.ID] = a
	}
	return out, nil
}
