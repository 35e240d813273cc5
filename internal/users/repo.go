package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound            = errNotFound{}
	ErrPreferencesNotFound = errors.New("preferences not found")
)

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	ListIDs(ctx context.Context) ([]string, error)
	GetPreferences(ctx context.Context, userID string) (Preferences, error)
	SavePreferences(ctx context.Context, prefs Preferences) error
}
