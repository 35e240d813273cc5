package animals

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("animal not found")

type Repo interface {
	Upsert(ctx context.Context, animal Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// GetMany returns the animals that exist among ids, in any status and in no particular order.
	GetMany(ctx context.Context, ids []string) ([]Animal, error)
	ListAvailable(ctx context.Context) ([]Animal, error)
}
