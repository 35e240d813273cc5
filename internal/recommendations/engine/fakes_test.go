package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

type fakeUsers struct {
	prefs   map[string]Preference
	known   map[string]bool
	lookErr error
}

func (f *fakeUsers) LookupPreference(_ context.Context, userID string) (Preference, bool, error) {
	if f.lookErr != nil {
		return Preference{}, false, f.lookErr
	}
	if !f.known[userID] {
		return Preference{}, false, ErrUserNotFound
	}
	p, ok := f.prefs[userID]
	return p, ok, nil
}

type fakeAnimals struct {
	all    []Animal
	counts map[string]int
	err    error
}

func (f *fakeAnimals) ListAvailable(context.Context) ([]Animal, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Animal, 0, len(f.all))
	for _, a := range f.all {
		if a.Available {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnimals) LookupAnimals(_ context.Context, ids []string) ([]Animal, error) {
	want := toSet(ids)
	var out []Animal
	for _, a := range f.all {
		if _, ok := want[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnimals) ViewCounts(context.Context) (map[string]int, error) {
	out := make(map[string]int, len(f.counts))
	for k, v := range f.counts {
		out[k] = v
	}
	return out, nil
}

type fakeViews struct {
	mu     sync.Mutex
	byUser map[string][]ViewEvent
}

func (f *fakeViews) add(userID, animalID string, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byUser == nil {
		f.byUser = map[string][]ViewEvent{}
	}
	f.byUser[userID] = append(f.byUser[userID], ViewEvent{UserID: userID, AnimalID: animalID, Timestamp: at})
}

func (f *fakeViews) ListViews(_ context.Context, userID string) ([]ViewEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]ViewEvent(nil), f.byUser[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

type fixture struct {
	users   *fakeUsers
	animals *fakeAnimals
	views   *fakeViews
	now     time.Time
}

func newFixture(animals ...Animal) *fixture {
	return &fixture{
		users:   &fakeUsers{prefs: map[string]Preference{}, known: map[string]bool{}},
		animals: &fakeAnimals{all: animals, counts: map[string]int{}},
		views:   &fakeViews{},
		now:     time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) user(id string) {
	f.users.known[id] = true
}

func (f *fixture) engine(opts ...Option) *Engine {
	opts = append([]Option{WithClock(func() time.Time { return f.now }), WithShuffler(reverseShuffle)}, opts...)
	return New(DefaultConfig(), f.users, f.animals, f.views, opts...)
}

// reverseShuffle is a deterministic permutation used in place of rand.Shuffle.
func reverseShuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func avail(id, species string) Animal {
	return Animal{ID: id, Species: species, Available: true}
}

type panicVectorizer struct{}

func (panicVectorizer) Vectorize([][]string) ([]Vector, error) {
	panic("vectorizer exploded")
}

type errVectorizer struct{}

func (errVectorizer) Vectorize([][]string) ([]Vector, error) {
	return nil, errors.New("embedding service down")
}
