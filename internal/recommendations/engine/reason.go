package engine

import (
	"context"
	"errors"
	"strings"

	"petmatch-backend/internal/shared/telemetry"
)

const (
	reasonViewedBefore     = "Similar to animals you've viewed before"
	reasonSmallAnimals     = "Matches your preference for small animals"
	reasonGoodWithChildren = "Great with children"
	reasonGoodWithPets     = "Gets along well with other pets"
	reasonSimilarBreed     = "Similar breed to animals you've viewed"
	reasonUnknownUser      = "Popular pet ready for adoption"
	reasonLookupFailed     = "Recommended based on availability"
	reasonGenericSpecies   = "Wonderful pet looking for a home"
)

var speciesReasons = map[string]string{
	"dog":        "Loyal and friendly companion",
	"cat":        "Independent and affectionate pet",
	"rabbit":     "Adorable and low-maintenance pet",
	"guinea pig": "Sociable and gentle pet",
	"hamster":    "Compact and entertaining companion",
}

var ageReasons = map[AgeBucket]string{
	AgeYoung:  "Young pet within your preferred age range",
	AgeAdult:  "Adult pet within your preferred age range",
	AgeSenior: "Senior pet within your preferred age range",
}

// Explainer produces reasons for one user from a single loaded snapshot.
type Explainer struct {
	pref        *Preference
	views       []ViewEvent
	viewed      map[string]Animal
	unknownUser bool
	failed      bool
}

// Explainer loads the user's preference and view history once for repeated Reason calls.
func (e *Engine) Explainer(ctx context.Context, userID string) *Explainer {
	snap, err := e.loadUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return &Explainer{unknownUser: true}
		}
		telemetry.Error("recommendations.reason.load_failed", map[string]any{"user_id": userID, "error": err.Error()})
		return &Explainer{failed: true}
	}
	if err := e.loadViews(ctx, snap); err != nil {
		telemetry.Error("recommendations.reason.load_failed", map[string]any{"user_id": userID, "error": err.Error()})
		return &Explainer{failed: true}
	}
	x := &Explainer{views: snap.views, viewed: snap.viewed}
	if snap.hasPref {
		pref := snap.pref
		x.pref = &pref
	}
	return x
}

// Reason explains why candidate was recommended to userID. It always returns a non-empty string.
func (e *Engine) Reason(ctx context.Context, userID string, candidate Animal) string {
	return e.Explainer(ctx, userID).Reason(candidate)
}

// Reason returns the explanation for candidate. It always returns a non-empty string.
func (x *Explainer) Reason(candidate Animal) string {
	if x == nil || x.failed {
		return reasonLookupFailed
	}
	if x.unknownUser {
		return reasonUnknownUser
	}
	return ReasonFor(x.pref, x.views, x.viewed, candidate)
}

// ReasonFor evaluates the reason checks in fixed priority and returns the first match.
// pref may be nil. Missing attributes make a check not match rather than fail.
func ReasonFor(pref *Preference, views []ViewEvent, viewed map[string]Animal, candidate Animal) (reason string) {
	defer func() {
		if rec := recover(); rec != nil {
			reason = reasonLookupFailed
		}
	}()

	for _, v := range views {
		if v.AnimalID == candidate.ID {
			return reasonViewedBefore
		}
	}

	if pref != nil {
		if r := preferenceReason(*pref, candidate); r != "" {
			return r
		}
	}

	if r := historyReason(views, viewed, candidate); r != "" {
		return r
	}

	return speciesReason(candidate.Species)
}

func preferenceReason(pref Preference, candidate Animal) string {
	species := strings.TrimSpace(candidate.Species)
	if preferred := strings.TrimSpace(pref.Species); preferred != "" && species != "" {
		if strings.EqualFold(preferred, SmallAnimalPreference) {
			if IsSmallAnimal(species) {
				return reasonSmallAnimals
			}
		} else if strings.EqualFold(preferred, species) {
			return "Matches your " + strings.ToLower(species) + " preference"
		}
	}

	if pref.Size != "" && candidate.Size == pref.Size {
		return "Matches your preference for " + strings.ToLower(string(candidate.Size)) + " sized pets"
	}

	if pref.Energy != "" && candidate.Energy == pref.Energy {
		return "Matches your preference for " + strings.ToLower(string(candidate.Energy)) + " energy pets"
	}

	if years, ok := candidate.AgeYears(); ok && pref.AgeInRange(years) {
		return ageReasons[BucketForMonths(*candidate.AgeMonths)]
	}

	if pref.GoodWithChildren && candidate.GoodWithKids {
		return reasonGoodWithChildren
	}
	if pref.GoodWithOtherPets && (candidate.GoodWithCats || candidate.GoodWithDogs) {
		return reasonGoodWithPets
	}
	return ""
}

func historyReason(views []ViewEvent, viewed map[string]Animal, candidate Animal) string {
	species := strings.TrimSpace(candidate.Species)
	breed := strings.TrimSpace(candidate.Breed)
	sameBreed := false
	for _, v := range views {
		if v.AnimalID == candidate.ID {
			continue
		}
		prior, ok := viewed[v.AnimalID]
		if !ok {
			continue
		}
		if species != "" && strings.EqualFold(strings.TrimSpace(prior.Species), species) {
			return "Similar to " + strings.ToLower(species) + "s you've viewed"
		}
		if breed != "" && strings.EqualFold(strings.TrimSpace(prior.Breed), breed) {
			sameBreed = true
		}
	}
	if sameBreed {
		return reasonSimilarBreed
	}
	return ""
}

func speciesReason(species string) string {
	if r, ok := speciesReasons[strings.ToLower(strings.TrimSpace(species))]; ok {
		return r
	}
	return reasonGenericSpecies
}
