package views

import (
	"context"
	"errors"
)

var ErrInvalidView = errors.New("invalid view")

// Repo is append-only.
type Repo interface {
	Append(ctx context.Context, view View) error
	// ListByUser returns views newest first; limit <= 0 returns all of them.
	ListByUser(ctx context.Context, userID string, limit int) ([]View, error)
	CountByAnimal(ctx context.Context) (map[string]int, error)
}
