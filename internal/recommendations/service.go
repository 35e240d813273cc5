package recommendations

import (
	"context"
	"errors"
	"strings"
	"time"

	"petmatch-backend/internal/animals"
	"petmatch-backend/internal/recommendations/cache"
	"petmatch-backend/internal/recommendations/engine"
	"petmatch-backend/internal/shared/metrics"
	"petmatch-backend/internal/shared/telemetry"
)

// RefreshLimit is the list size computed by background refreshes.
const RefreshLimit = 20

var ErrUserRequired = errors.New("user id is required")

// AnimalFinder resolves animal records for hydration.
type AnimalFinder interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
	Lookup(ctx context.Context, ids []string) (map[string]animals.Animal, error)
}

// ListCache caches hydrated lists per user and list size.
type ListCache interface {
	GetJSON(ctx context.Context, userID string, limit int, dest any) (bool, error)
	SetJSON(ctx context.Context, userID string, limit int, value any) error
	Invalidate(ctx context.Context, userID string) error
}

// ScoreStore persists computed rankings. Nothing reads them back for ranking.
type ScoreStore interface {
	Save(ctx context.Context, userID string, rows []cache.ScoreRow) error
}

type Service struct {
	Engine  *engine.Engine
	Animals AnimalFinder
	Cache   ListCache
	Scores  ScoreStore
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Recommend returns up to limit hydrated recommendations for userID. Cached lists
// are served unless refresh is set.
func (s *Service) Recommend(ctx context.Context, userID string, limit int, refresh bool) (List, error) {
	if s == nil || s.Engine == nil || s.Animals == nil {
		return List{}, errors.New("recommendations service not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return List{}, ErrUserRequired
	}
	limit = s.Engine.Config().ClampLimit(limit)

	if !refresh {
		if list, ok := s.cached(ctx, userID, limit); ok {
			metrics.IncRecommendation(outcomeCached)
			return list, nil
		}
	}

	start := time.Now()
	res := s.Engine.Recommend(ctx, userID, limit)
	list := s.hydrate(ctx, res)
	metrics.ObserveRecommendationDuration(time.Since(start))
	metrics.IncRecommendation(list.outcome())

	telemetry.Info("recommendations.served", map[string]any{
		"user_id":  userID,
		"limit":    limit,
		"count":    len(list.Items),
		"fallback": list.Fallback,
		"refresh":  refresh,
	})

	if len(list.Items) > 0 {
		s.persist(ctx, list)
		s.store(ctx, userID, limit, list)
	}
	return list, nil
}

// Reason explains why animalID is recommended to userID.
// It returns animals.ErrNotFound for unknown animals.
func (s *Service) Reason(ctx context.Context, userID, animalID string) (string, error) {
	if s == nil || s.Engine == nil || s.Animals == nil {
		return "", errors.New("recommendations service not configured")
	}
	animal, err := s.Animals.Get(ctx, animalID)
	if err != nil {
		return "", err
	}
	return s.Engine.Reason(ctx, userID, animal.Profile()), nil
}

// Refresh drops the user's cached lists and recomputes one of size limit.
func (s *Service) Refresh(ctx context.Context, userID string, limit int) (List, error) {
	if limit <= 0 {
		limit = RefreshLimit
	}
	s.Invalidate(ctx, userID)
	return s.Recommend(ctx, userID, limit, true)
}

// Invalidate drops every cached list of userID. Failures are logged.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s == nil || s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		telemetry.Warn("recommendations.cache.invalidate_failed", map[string]any{"user_id": userID, "error": err.Error()})
	}
}

func (s *Service) cached(ctx context.Context, userID string, limit int) (List, bool) {
	if s.Cache == nil {
		return List{}, false
	}
	var list List
	ok, err := s.Cache.GetJSON(ctx, userID, limit, &list)
	switch {
	case err != nil:
		metrics.IncCacheLookup("error")
		telemetry.Warn("recommendations.cache.read_failed", map[string]any{"user_id": userID, "error": err.Error()})
		return List{}, false
	case !ok:
		metrics.IncCacheLookup("miss")
		return List{}, false
	}
	if !s.revalidate(ctx, &list) {
		metrics.IncCacheLookup("stale")
		telemetry.Info("recommendations.cache.stale", map[string]any{"user_id": userID, "limit": limit})
		return List{}, false
	}
	metrics.IncCacheLookup("hit")
	list.Cached = true
	return list, true
}

// revalidate swaps in current animal records and reports false when any cached
// item is gone or no longer available for adoption.
func (s *Service) revalidate(ctx context.Context, list *List) bool {
	ids := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		ids = append(ids, item.Animal.ID)
	}
	byID, err := s.Animals.Lookup(ctx, ids)
	if err != nil {
		telemetry.Warn("recommendations.cache.revalidate_failed", map[string]any{"user_id": list.UserID, "error": err.Error()})
		return false
	}
	for i, item := range list.Items {
		animal, ok := byID[item.Animal.ID]
		if !ok || !animal.Available() {
			return false
		}
		list.Items[i].Animal = animal
	}
	return true
}

func (s *Service) store(ctx context.Context, userID string, limit int, list List) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.SetJSON(ctx, userID, limit, list); err != nil {
		telemetry.Warn("recommendations.cache.write_failed", map[string]any{"user_id": userID, "error": err.Error()})
	}
}

// hydrate attaches animal records and reasons. Items whose animal vanished are dropped.
func (s *Service) hydrate(ctx context.Context, res engine.Result) List {
	list := List{
		UserID:      res.UserID,
		Items:       []Item{},
		Fallback:    res.Fallback,
		GeneratedAt: s.now(),
	}
	if len(res.Items) == 0 {
		return list
	}

	byID, err := s.Animals.Lookup(ctx, res.IDs())
	if err != nil {
		telemetry.Error("recommendations.hydrate_failed", map[string]any{"user_id": res.UserID, "error": err.Error()})
		return list
	}

	explainer := s.Engine.Explainer(ctx, res.UserID)
	for _, rec := range res.Items {
		animal, ok := byID[rec.AnimalID]
		if !ok {
			telemetry.Warn("recommendations.hydrate.missing_animal", map[string]any{"user_id": res.UserID, "animal_id": rec.AnimalID})
			continue
		}
		list.Items = append(list.Items, Item{
			Animal:     animal,
			Rank:       len(list.Items) + 1,
			Score:      rec.Score,
			Components: rec.Components,
			Source:     rec.Source,
			Reason:     explainer.Reason(animal.Profile()),
		})
	}
	return list
}

func (s *Service) persist(ctx context.Context, list List) {
	if s.Scores == nil {
		return
	}
	rows := make([]cache.ScoreRow, 0, len(list.Items))
	for _, item := range list.Items {
		rows = append(rows, cache.ScoreRow{
			UserID:           list.UserID,
			AnimalID:         item.Animal.ID,
			Rank:             item.Rank,
			Score:            item.Score,
			PreferenceScore:  item.Components.Preference,
			InteractionScore: item.Components.Interaction,
			SimilarityScore:  item.Components.Similarity,
			Source:           string(item.Source),
			ComputedAt:       list.GeneratedAt,
		})
	}
	if err := s.Scores.Save(ctx, list.UserID, rows); err != nil {
		telemetry.Warn("recommendations.scores.save_failed", map[string]any{"user_id": list.UserID, "error": err.Error()})
	}
}
