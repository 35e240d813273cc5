package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"petmatch-backend/internal/shared/telemetry"
)

// Engine ranks available animals for a user. It holds no per-user state; every
// call loads a fresh snapshot from its collaborators.
type Engine struct {
	cfg        Config
	users      UserLookup
	animals    AnimalLookup
	views      ViewHistory
	vectorizer Vectorizer
	now        func() time.Time
	shuffle    Shuffler
	observe    func(Outcome)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithVectorizer replaces the default per-request TF-IDF vectorizer.
func WithVectorizer(v Vectorizer) Option {
	return func(e *Engine) {
		if v != nil {
			e.vectorizer = v
		}
	}
}

// WithClock sets the time source used for recency weighting.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithShuffler sets the permutation used by the zero-views popularity fallback.
func WithShuffler(s Shuffler) Option {
	return func(e *Engine) {
		if s != nil {
			e.shuffle = s
		}
	}
}

// WithOutcomeObserver registers a callback invoked once per scorer outcome.
func WithOutcomeObserver(fn func(Outcome)) Option {
	return func(e *Engine) {
		e.observe = fn
	}
}

// New constructs an Engine. An invalid cfg falls back to DefaultConfig.
func New(cfg Config, users UserLookup, animals AnimalLookup, views ViewHistory, opts ...Option) *Engine {
	if err := cfg.Validate(); err != nil {
		telemetry.Warn("engine.config.invalid", map[string]any{"error": err.Error()})
		cfg = DefaultConfig()
	}
	e := &Engine{
		cfg:        cfg,
		users:      users,
		animals:    animals,
		views:      views,
		vectorizer: TFIDFVectorizer{},
		now:        time.Now,
		shuffle:    rand.Shuffle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

type snapshot struct {
	userID    string
	pref      Preference
	hasPref   bool
	views     []ViewEvent
	viewed    map[string]Animal
	available []Animal
	counts    map[string]int
	now       time.Time
}

// viewedInOrder returns distinct viewed animals, most recent first.
func (s *snapshot) viewedInOrder() []Animal {
	seen := make(map[string]struct{}, len(s.views))
	out := make([]Animal, 0, len(s.viewed))
	for _, v := range s.views {
		if _, ok := seen[v.AnimalID]; ok {
			continue
		}
		seen[v.AnimalID] = struct{}{}
		if a, ok := s.viewed[v.AnimalID]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (e *Engine) loadUser(ctx context.Context, userID string) (*snapshot, error) {
	if e.users == nil {
		return nil, errors.New("user lookup not configured")
	}
	pref, ok, err := e.users.LookupPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &snapshot{userID: userID, pref: pref, hasPref: ok, now: e.now()}, nil
}

func (e *Engine) loadViews(ctx context.Context, snap *snapshot) error {
	if e.views == nil {
		return nil
	}
	views, err := e.views.ListViews(ctx, snap.userID)
	if err != nil {
		return fmt.Errorf("list views: %w", err)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})
	snap.views = views
	snap.viewed = map[string]Animal{}
	if len(views) == 0 || e.animals == nil {
		return nil
	}
	ids := distinctAnimalIDs(views, len(views))
	animals, err := e.animals.LookupAnimals(ctx, ids)
	if err != nil {
		return fmt.Errorf("lookup viewed animals: %w", err)
	}
	for _, a := range animals {
		snap.viewed[a.ID] = a
	}
	return nil
}

// load fetches the user, view history, candidate animals and view counts once per request.
func (e *Engine) load(ctx context.Context, userID string) (*snapshot, error) {
	snap, err := e.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if e.animals == nil {
		return nil, errors.New("animal lookup not configured")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.loadViews(gctx, snap)
	})
	g.Go(func() error {
		available, err := e.animals.ListAvailable(gctx)
		if err != nil {
			return fmt.Errorf("list available animals: %w", err)
		}
		filtered := make([]Animal, 0, len(available))
		for _, a := range available {
			if a.Available {
				filtered = append(filtered, a)
			}
		}
		snap.available = filtered
		return nil
	})
	g.Go(func() error {
		counts, err := e.animals.ViewCounts(gctx)
		if err != nil {
			return fmt.Errorf("view counts: %w", err)
		}
		snap.counts = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if snap.counts == nil {
		snap.counts = map[string]int{}
	}
	return snap, nil
}

// Recommend returns up to limit ranked animals for userID. It never fails: unknown
// users and load errors are logged and yield an empty result.
func (e *Engine) Recommend(ctx context.Context, userID string, limit int) Result {
	limit = e.cfg.ClampLimit(limit)
	result := Result{UserID: userID, Items: []Recommendation{}}

	snap, err := e.load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			telemetry.Warn("recommendations.user_not_found", map[string]any{"user_id": userID})
		} else {
			telemetry.Error("recommendations.load_failed", map[string]any{"user_id": userID, "error": err.Error()})
		}
		return result
	}
	if len(snap.available) == 0 {
		telemetry.Warn("recommendations.no_available_animals", map[string]any{"user_id": userID})
		return result
	}

	poolExcluded := toSet(distinctAnimalIDs(snap.views, e.cfg.PoolExcludeRecent))
	pool := make([]Animal, 0, len(snap.available))
	for _, a := range snap.available {
		if _, skip := poolExcluded[a.ID]; !skip {
			pool = append(pool, a)
		}
	}

	outcomes := e.score(snap, pool)
	result.Outcomes = outcomes

	// Only candidates with a positive combined score are ranked; the rest of the
	// list comes from popularity backfill.
	scored := make([]Recommendation, 0, len(pool))
	for _, cand := range pool {
		comp := ComponentScore{}
		for _, o := range outcomes {
			if !o.Contributes() {
				continue
			}
			s := o.Scores[cand.ID]
			switch o.Scorer {
			case ScorerPreference:
				comp.Preference = s
			case ScorerHistory:
				comp.Interaction = s
			case ScorerSimilarity:
				comp.Similarity = s
			}
		}
		comp.Combined = e.cfg.PreferenceWeight*comp.Preference +
			e.cfg.InteractionWeight*comp.Interaction +
			e.cfg.SimilarityWeight*comp.Similarity
		if comp.Combined <= 0 {
			continue
		}
		scored = append(scored, Recommendation{
			AnimalID:   cand.ID,
			Score:      comp.Combined,
			Components: comp,
			Source:     SourcePersonalized,
		})
	}

	if len(scored) == 0 {
		telemetry.Info("recommendations.fallback.popular", map[string]any{
			"user_id":    userID,
			"view_count": len(snap.views),
			"pool_size":  len(pool),
		})
		result.Fallback = true
		result.Items = popularItems(RankPopular(snap.available, snap.counts, limit, poolExcluded, e.shuffle))
		return result
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return snap.counts[scored[i].AnimalID] > snap.counts[scored[j].AnimalID]
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	if len(scored) < limit {
		exclude := toSet(distinctAnimalIDs(snap.views, e.cfg.BackfillExcludeRecent))
		for id := range poolExcluded {
			exclude[id] = struct{}{}
		}
		for _, item := range scored {
			exclude[item.AnimalID] = struct{}{}
		}
		backfill := RankPopular(snap.available, snap.counts, limit-len(scored), exclude, e.shuffle)
		if len(backfill) > 0 {
			telemetry.Info("recommendations.backfill", map[string]any{
				"user_id": userID,
				"scored":  len(scored),
				"added":   len(backfill),
			})
		}
		scored = append(scored, popularItems(backfill)...)
	}

	result.Items = scored
	return result
}

// Popular returns up to limit available animals by view count, excluding excludeIDs.
func (e *Engine) Popular(ctx context.Context, limit int, excludeIDs []string) []string {
	if e.animals == nil {
		return []string{}
	}
	available, err := e.animals.ListAvailable(ctx)
	if err != nil {
		telemetry.Error("recommendations.popular.load_failed", map[string]any{"error": err.Error()})
		return []string{}
	}
	counts, err := e.animals.ViewCounts(ctx)
	if err != nil {
		telemetry.Error("recommendations.popular.load_failed", map[string]any{"error": err.Error()})
		counts = map[string]int{}
	}
	eligible := make([]Animal, 0, len(available))
	for _, a := range available {
		if a.Available {
			eligible = append(eligible, a)
		}
	}
	return RankPopular(eligible, counts, limit, toSet(excludeIDs), e.shuffle)
}

// score runs the three scorers concurrently. Each is isolated so a failure in one
// leaves the others intact.
func (e *Engine) score(snap *snapshot, pool []Animal) []Outcome {
	outcomes := make([]Outcome, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		outcomes[0] = runScorer(ScorerPreference, func() (map[string]float64, error) {
			if !snap.hasPref || !snap.pref.Specified() {
				return nil, ErrSignalUnavailable
			}
			scores := make(map[string]float64, len(pool))
			for _, cand := range pool {
				scores[cand.ID] = ScorePreference(cand, snap.pref)
			}
			return scores, nil
		})
	}()

	go func() {
		defer wg.Done()
		outcomes[1] = runScorer(ScorerHistory, func() (map[string]float64, error) {
			if len(snap.views) < e.cfg.MinHistoryViews {
				return nil, ErrSignalUnavailable
			}
			profile := MineHistory(snap.views, snap.viewed, snap.now, e.cfg)
			if profile.Empty() {
				return nil, ErrSignalUnavailable
			}
			scores := make(map[string]float64, len(pool))
			for _, cand := range pool {
				scores[cand.ID] = profile.Score(cand)
			}
			return scores, nil
		})
	}()

	go func() {
		defer wg.Done()
		outcomes[2] = runScorer(ScorerSimilarity, func() (map[string]float64, error) {
			if len(snap.views) < e.cfg.MinSimilarityViews || len(snap.views) == 0 {
				return nil, ErrSignalUnavailable
			}
			return ScoreSimilarity(e.vectorizer, snap.viewedInOrder(), pool)
		})
	}()

	wg.Wait()

	for _, o := range outcomes {
		if o.Status == OutcomeFailed {
			telemetry.Error("recommendations.scorer.failed", map[string]any{
				"user_id": snap.userID,
				"scorer":  o.Scorer,
				"error":   o.Err.Error(),
			})
		}
		if e.observe != nil {
			e.observe(o)
		}
	}
	return outcomes
}

func popularItems(ids []string) []Recommendation {
	out := make([]Recommendation, 0, len(ids))
	for _, id := range ids {
		out = append(out, Recommendation{AnimalID: id, Source: SourcePopular})
	}
	return out
}

// distinctAnimalIDs returns up to n distinct animal ids from views in order.
func distinctAnimalIDs(views []ViewEvent, n int) []string {
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for _, v := range views {
		if len(out) >= n {
			break
		}
		if _, ok := seen[v.AnimalID]; ok {
			continue
		}
		seen[v.AnimalID] = struct{}{}
		out = append(out, v.AnimalID)
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
