package engine

import (
	"strings"
	"time"
)

// Size is the size class of an animal. The zero value means unknown.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Energy is the energy class of an animal. The zero value means unknown.
type Energy string

const (
	EnergyLow    Energy = "Low"
	EnergyMedium Energy = "Medium"
	EnergyHigh   Energy = "High"
)

// ParseSize normalizes a raw size value. Unrecognized values map to the zero Size.
func ParseSize(raw string) Size {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "small":
		return SizeSmall
	case "medium":
		return SizeMedium
	case "large":
		return SizeLarge
	default:
		return ""
	}
}

// ParseEnergy normalizes a raw energy value. Unrecognized values map to the zero Energy.
func ParseEnergy(raw string) Energy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return EnergyLow
	case "medium":
		return EnergyMedium
	case "high":
		return EnergyHigh
	default:
		return ""
	}
}

// SmallAnimalPreference is the species preference that matches any species in the small-animal set.
const SmallAnimalPreference = "Small Animal"

var smallAnimalSpecies = map[string]struct{}{
	"hamster":    {},
	"guinea pig": {},
	"rabbit":     {},
	"gerbil":     {},
	"mouse":      {},
	"rat":        {},
	"ferret":     {},
}

// IsSmallAnimal reports whether species belongs to the small-animal set.
func IsSmallAnimal(species string) bool {
	_, ok := smallAnimalSpecies[strings.ToLower(strings.TrimSpace(species))]
	return ok
}

// Animal is the read-only profile of an adoptable animal used for scoring.
// Optional attributes are represented by their zero value (or nil for AgeMonths).
type Animal struct {
	ID           string
	Species      string
	Breed        string
	Size         Size
	Energy       Energy
	AgeMonths    *int
	Gender       string
	GoodWithKids bool
	GoodWithCats bool
	GoodWithDogs bool
	Available    bool
}

// Months returns a pointer to n, for populating Animal.AgeMonths.
func Months(n int) *int {
	return &n
}

// AgeYears returns the animal's age in fractional years and whether it is known.
func (a Animal) AgeYears() (float64, bool) {
	if a.AgeMonths == nil {
		return 0, false
	}
	return float64(*a.AgeMonths) / 12.0, true
}

// Preference is a user's declared adoption preferences. Unset fields carry no opinion.
type Preference struct {
	Species           string
	Size              Size
	Energy            Energy
	AgeMinYears       *float64
	AgeMaxYears       *float64
	GoodWithChildren  bool
	GoodWithOtherPets bool
}

// HasAgeRange reports whether either age bound was set.
func (p Preference) HasAgeRange() bool {
	return p.AgeMinYears != nil || p.AgeMaxYears != nil
}

// AgeInRange reports whether years falls inside the inclusive preferred range.
// A missing bound is open on that side.
func (p Preference) AgeInRange(years float64) bool {
	if !p.HasAgeRange() {
		return false
	}
	if p.AgeMinYears != nil && years < *p.AgeMinYears {
		return false
	}
	if p.AgeMaxYears != nil && years > *p.AgeMaxYears {
		return false
	}
	return true
}

// Specified reports whether at least one criterion was expressed.
func (p Preference) Specified() bool {
	return strings.TrimSpace(p.Species) != "" ||
		p.Size != "" ||
		p.Energy != "" ||
		p.HasAgeRange() ||
		p.GoodWithChildren ||
		p.GoodWithOtherPets
}

// ViewEvent is one entry of a user's append-only view log.
type ViewEvent struct {
	UserID          string
	AnimalID        string
	Timestamp       time.Time
	DurationSeconds int
}

// Source identifies which path produced a recommendation.
type Source string

const (
	SourcePersonalized Source = "personalized"
	SourcePopular      Source = "popular"
)

// ComponentScore holds the per-scorer contributions for one candidate.
type ComponentScore struct {
	Preference  float64 `json:"preference"`
	Interaction float64 `json:"interaction"`
	Similarity  float64 `json:"similarity"`
	Combined    float64 `json:"combined"`
}

// Recommendation is one ranked candidate.
type Recommendation struct {
	AnimalID   string         `json:"animalId"`
	Score      float64        `json:"score"`
	Components ComponentScore `json:"components"`
	Source     Source         `json:"source"`
}

// Result is the ranked output of a single request.
type Result struct {
	UserID   string
	Items    []Recommendation
	Fallback bool
	Outcomes []Outcome
}

// IDs returns the ranked animal ids.
func (r Result) IDs() []string {
	out := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		out = append(out, item.AnimalID)
	}
	return out
}
