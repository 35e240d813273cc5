package engine

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned by UserLookup for unknown users.
var ErrUserNotFound = errors.New("user not found")

// UserLookup resolves a user and their optional stored preference.
type UserLookup interface {
	// LookupPreference returns ErrUserNotFound for unknown users. ok is false when
	// the user exists but has no stored preference.
	LookupPreference(ctx context.Context, userID string) (pref Preference, ok bool, err error)
}

// AnimalLookup is the read-only view of the animal registry.
type AnimalLookup interface {
	// ListAvailable returns every animal whose status is available, in a stable order.
	ListAvailable(ctx context.Context) ([]Animal, error)
	// LookupAnimals returns the animals with the given ids regardless of status. Unknown ids are omitted.
	LookupAnimals(ctx context.Context, ids []string) ([]Animal, error)
	// ViewCounts returns total recorded views per animal id.
	ViewCounts(ctx context.Context) (map[string]int, error)
}

// ViewHistory is the read side of the view log.
type ViewHistory interface {
	// ListViews returns a user's views ordered by timestamp descending.
	ListViews(ctx context.Context, userID string) ([]ViewEvent, error)
}
