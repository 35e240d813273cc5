package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petmatch-backend/internal/recommendations/engine"
)

var ErrInvalidPreferences = errors.New("invalid preferences")

type Service struct {
	Repo Repo
	// OnPreferencesChanged runs after a successful save; errors there are the callee's concern.
	OnPreferencesChanged func(ctx context.Context, userID string)
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Ensure makes sure a user row exists for userID so views and preferences can reference it.
func (s *Service) Ensure(ctx context.Context, userID string, isGuest bool) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	if _, err := s.Repo.GetByID(ctx, userID); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.Repo.Upsert(ctx, User{ID: userID, IsGuest: isGuest})
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("users service not configured")
	}
	return s.Repo.ListIDs(ctx)
}

// GetPreferences returns ErrNotFound for unknown users and ErrPreferencesNotFound
// when the user exists but never saved preferences.
func (s *Service) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	if s == nil || s.Repo == nil {
		return Preferences{}, errors.New("users service not configured")
	}
	return s.Repo.GetPreferences(ctx, userID)
}

func (s *Service) UpdatePreferences(ctx context.Context, prefs Preferences) (Preferences, error) {
	if s == nil || s.Repo == nil {
		return Preferences{}, errors.New("users service not configured")
	}
	normalized, err := normalizePreferences(prefs)
	if err != nil {
		return Preferences{}, err
	}
	if err := s.Repo.SavePreferences(ctx, normalized); err != nil {
		return Preferences{}, err
	}
	if s.OnPreferencesChanged != nil {
		s.OnPreferencesChanged(ctx, normalized.UserID)
	}
	return s.Repo.GetPreferences(ctx, normalized.UserID)
}

func normalizePreferences(p Preferences) (Preferences, error) {
	p.PreferredSpecies = strings.TrimSpace(p.PreferredSpecies)
	if raw := strings.TrimSpace(p.PreferredSize); raw != "" {
		size := engine.ParseSize(raw)
		if size == "" {
			return Preferences{}, fmt.Errorf("%w: unknown size %q", ErrInvalidPreferences, raw)
		}
		p.PreferredSize = string(size)
	} else {
		p.PreferredSize = ""
	}
	if raw := strings.TrimSpace(p.PreferredEnergy); raw != "" {
		energy := engine.ParseEnergy(raw)
		if energy == "" {
			return Preferences{}, fmt.Errorf("%w: unknown energy level %q", ErrInvalidPreferences, raw)
		}
		p.PreferredEnergy = string(energy)
	} else {
		p.PreferredEnergy = ""
	}
	if p.AgeMinYears != nil && *p.AgeMinYears < 0 {
		return Preferences{}, fmt.Errorf("%w: ageMinYears must be non-negative", ErrInvalidPreferences)
	}
	if p.AgeMaxYears != nil && *p.AgeMaxYears < 0 {
		return Preferences{}, fmt.Errorf("%w: ageMaxYears must be non-negative", ErrInvalidPreferences)
	}
	if p.AgeMinYears != nil && p.AgeMaxYears != nil && *p.AgeMinYears > *p.AgeMaxYears {
		return Preferences{}, fmt.Errorf("%w: ageMinYears cannot exceed ageMaxYears", ErrInvalidPreferences)
	}
	return p, nil
}
