package recommendations

import (
	"context"
	"errors"

	"petmatch-backend/internal/animals"
	"petmatch-backend/internal/recommendations/engine"
	"petmatch-backend/internal/users"
	"petmatch-backend/internal/views"
)

// PreferenceReader is the part of users.Service the engine needs.
type PreferenceReader interface {
	GetPreferences(ctx context.Context, userID string) (users.Preferences, error)
}

// UserLookup adapts the users domain to engine.UserLookup.
type UserLookup struct {
	Users PreferenceReader
}

func (u UserLookup) LookupPreference(ctx context.Context, userID string) (engine.Preference, bool, error) {
	if u.Users == nil {
		return engine.Preference{}, false, errors.New("users not configured")
	}
	prefs, err := u.Users.GetPreferences(ctx, userID)
	switch {
	case errors.Is(err, users.ErrNotFound):
		return engine.Preference{}, false, engine.ErrUserNotFound
	case errors.Is(err, users.ErrPreferencesNotFound):
		return engine.Preference{}, false, nil
	case err != nil:
		return engine.Preference{}, false, err
	}
	return prefs.ToEngine(), true, nil
}

// AnimalLookup adapts the animal registry and the view log's counts to engine.AnimalLookup.
type AnimalLookup struct {
	Animals animals.Repo
	Views   views.Repo
}

func (a AnimalLookup) ListAvailable(ctx context.Context) ([]engine.Animal, error) {
	list, err := a.Animals.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return animals.Profiles(list), nil
}

func (a AnimalLookup) LookupAnimals(ctx context.Context, ids []string) ([]engine.Animal, error) {
	if len(ids) == 0 {
		return []engine.Animal{}, nil
	}
	list, err := a.Animals.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return animals.Profiles(list), nil
}

func (a AnimalLookup) ViewCounts(ctx context.Context) (map[string]int, error) {
	if a.Views == nil {
		return map[string]int{}, nil
	}
	return a.Views.CountByAnimal(ctx)
}

// ViewHistory adapts views.Repo to engine.ViewHistory.
type ViewHistory struct {
	Views views.Repo
}

func (v ViewHistory) ListViews(ctx context.Context, userID string) ([]engine.ViewEvent, error) {
	list, err := v.Views.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	return views.Events(list), nil
}

var (
	_ engine.UserLookup   = UserLookup{}
	_ engine.AnimalLookup = AnimalLookup{}
	_ engine.ViewHistory  = ViewHistory{}
)
