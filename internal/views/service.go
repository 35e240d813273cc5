package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"petmatch-backend/internal/animals"
	"petmatch-backend/internal/shared/metrics"
	"petmatch-backend/internal/shared/telemetry"
)

// UserEnsurer creates a user row on first contact.
type UserEnsurer interface {
	Ensure(ctx context.Context, userID string, isGuest bool) error
}

// AnimalFinder resolves animals by id.
type AnimalFinder interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
	Lookup(ctx context.Context, ids []string) (map[string]animals.Animal, error)
}

type Service struct {
	Repo    Repo
	Users   UserEnsurer
	Animals AnimalFinder
	Now     func() time.Time
	// OnRecorded runs after a view is stored.
	OnRecorded func(ctx context.Context, view View)
}

type RecordInput struct {
	UserID          string
	IsGuest         bool
	AnimalID        string
	DurationSeconds int
}

// RecentView pairs a view with the animal that was viewed.
type RecentView struct {
	View   View            `json:"view"`
	Animal *animals.Animal `json:"animal,omitempty"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) Record(ctx context.Context, in RecordInput) (View, error) {
	if s == nil || s.Repo == nil {
		return View{}, errors.New("views service not configured")
	}
	in.AnimalID = strings.TrimSpace(in.AnimalID)
	if strings.TrimSpace(in.UserID) == "" || in.AnimalID == "" {
		return View{}, fmt.Errorf("%w: user and animal are required", ErrInvalidView)
	}
	if in.DurationSeconds < 0 {
		return View{}, fmt.Errorf("%w: duration must be non-negative", ErrInvalidView)
	}
	if s.Animals != nil {
		if _, err := s.Animals.Get(ctx, in.AnimalID); err != nil {
			return View{}, err
		}
	}
	if s.Users != nil {
		if err := s.Users.Ensure(ctx, in.UserID, in.IsGuest); err != nil {
			return View{}, fmt.Errorf("ensure user: %w", err)
		}
	}

	view := View{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		AnimalID:        in.AnimalID,
		ViewedAt:        s.now(),
		DurationSeconds: in.DurationSeconds,
	}
	if err := s.Repo.Append(ctx, view); err != nil {
		return View{}, err
	}
	metrics.IncViewsRecorded()
	telemetry.Info("views.recorded", map[string]any{
		"view_id":          view.ID,
		"user_id":          view.UserID,
		"animal_id":        view.AnimalID,
		"duration_seconds": view.DurationSeconds,
	})
	if s.OnRecorded != nil {
		s.OnRecorded(ctx, view)
	}
	return view, nil
}

// Recent returns the user's latest views with animal details where still known.
func (s *Service) Recent(ctx context.Context, userID string) ([]RecentView, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("views service not configured")
	}
	list, err := s.Repo.ListByUser(ctx, userID, RecentLimit)
	if err != nil {
		return nil, err
	}
	out := make([]RecentView, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}

	var byID map[string]animals.Animal
	if s.Animals != nil {
		ids := make([]string, 0, len(list))
		for _, v := range list {
			ids = append(ids, v.AnimalID)
		}
		byID, err = s.Animals.Lookup(ctx, ids)
		if err != nil {
			telemetry.Warn("views.recent.lookup_failed", map[string]any{"user_id": userID, "error": err.Error()})
		}
	}
	for _, v := range list {
		item := RecentView{View: v}
		if a, ok := byID[v.AnimalID]; ok {
			item.Animal = &a
		}
		out = append(out, item)
	}
	return out, nil
}
