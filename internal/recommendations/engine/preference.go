package engine

import "strings"

const (
	speciesPoints = 4
	sizePoints    = 2
	agePoints     = 2
	energyPoints  = 2
	kidsPoints    = 1
	petsPoints    = 1
)

// ScorePreference scores a candidate against explicit preferences in [0,1].
// Only criteria the user specified count toward the possible total; a preference
// with nothing specified scores 0 for every candidate.
func ScorePreference(candidate Animal, pref Preference) float64 {
	earned, possible := 0, 0

	if species := strings.TrimSpace(pref.Species); species != "" {
		possible += speciesPoints
		if speciesMatches(species, candidate.Species) {
			earned += speciesPoints
		}
	}

	if pref.Size != "" {
		possible += sizePoints
		if candidate.Size == pref.Size {
			earned += sizePoints
		}
	}

	if pref.HasAgeRange() {
		possible += agePoints
		if years, ok := candidate.AgeYears(); ok && pref.AgeInRange(years) {
			earned += agePoints
		}
	}

	if pref.Energy != "" {
		possible += energyPoints
		if candidate.Energy == pref.Energy {
			earned += energyPoints
		}
	}

	if pref.GoodWithChildren {
		possible += kidsPoints
		if candidate.GoodWithKids {
			earned += kidsPoints
		}
	}

	if pref.GoodWithOtherPets {
		possible += petsPoints
		if candidate.GoodWithCats || candidate.GoodWithDogs {
			earned += petsPoints
		}
	}

	if possible == 0 {
		return 0
	}
	return float64(earned) / float64(possible)
}

// speciesMatches applies the species criterion, including the small-animal group.
func speciesMatches(preferred, species string) bool {
	if strings.EqualFold(preferred, SmallAnimalPreference) {
		return IsSmallAnimal(species)
	}
	return strings.EqualFold(strings.TrimSpace(species), preferred)
}
