package engine

import (
	"math"
	"strings"
	"time"
)

const (
	historySpeciesWeight = 0.4
	historyBreedWeight   = 0.3
	historySizeWeight    = 0.2
	historyFeatureWeight = 0.1

	// good_with_kids, good_with_cats, good_with_dogs, energy_level
	featureSlots = 4
)

// RecencyWeight returns decay^min(days, windowDays) for a view of the given age.
// Views older than the window are clipped to the window's weight.
func RecencyWeight(age time.Duration, decay float64, windowDays int) float64 {
	days := int(age / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	if days > windowDays {
		days = windowDays
	}
	return math.Pow(decay, float64(days))
}

// HistoryProfile holds recency-weighted attribute frequencies mined from a view log.
// Each bucket is normalized by the total accumulated weight.
type HistoryProfile struct {
	Species     map[string]float64
	Breed       map[string]float64
	Size        map[string]float64
	Features    map[string]float64
	TotalWeight float64
}

// MineHistory accumulates weighted attribute counts over views. Views whose animal
// is not present in viewed are skipped.
func MineHistory(views []ViewEvent, viewed map[string]Animal, now time.Time, cfg Config) HistoryProfile {
	profile := HistoryProfile{
		Species:  map[string]float64{},
		Breed:    map[string]float64{},
		Size:     map[string]float64{},
		Features: map[string]float64{},
	}

	for _, view := range views {
		animal, ok := viewed[view.AnimalID]
		if !ok {
			continue
		}
		weight := RecencyWeight(now.Sub(view.Timestamp), cfg.RecencyDecay, cfg.RecencyWindowDays)
		attrs := ExtractAttributes(animal)

		profile.TotalWeight += weight
		if attrs.Species != "" {
			profile.Species[strings.ToLower(attrs.Species)] += weight
		}
		if attrs.Breed != "" {
			profile.Breed[strings.ToLower(attrs.Breed)] += weight
		}
		if attrs.Size != "" {
			profile.Size[string(attrs.Size)] += weight
		}
		for _, key := range featureKeys(attrs) {
			profile.Features[key] += weight
		}
	}

	if profile.TotalWeight > 0 {
		for _, bucket := range []map[string]float64{profile.Species, profile.Breed, profile.Size, profile.Features} {
			for k := range bucket {
				bucket[k] /= profile.TotalWeight
			}
		}
	}
	return profile
}

// Empty reports whether no view contributed any weight.
func (p HistoryProfile) Empty() bool {
	return p.TotalWeight <= 0
}

// Score rates a candidate as 0.4*species + 0.3*breed + 0.2*size + 0.1*avg(features).
// Missing buckets contribute 0.
func (p HistoryProfile) Score(candidate Animal) float64 {
	if p.Empty() {
		return 0
	}
	attrs := ExtractAttributes(candidate)
	score := 0.0
	if attrs.Species != "" {
		score += historySpeciesWeight * p.Species[strings.ToLower(attrs.Species)]
	}
	if attrs.Breed != "" {
		score += historyBreedWeight * p.Breed[strings.ToLower(attrs.Breed)]
	}
	if attrs.Size != "" {
		score += historySizeWeight * p.Size[string(attrs.Size)]
	}
	featureSum := 0.0
	for _, key := range featureKeys(attrs) {
		featureSum += p.Features[key]
	}
	score += historyFeatureWeight * featureSum / featureSlots
	return score
}

func featureKeys(attrs Attributes) []string {
	keys := make([]string, 0, featureSlots)
	if attrs.GoodWithKids {
		keys = append(keys, "good_with_kids")
	}
	if attrs.GoodWithCats {
		keys = append(keys, "good_with_cats")
	}
	if attrs.GoodWithDogs {
		keys = append(keys, "good_with_dogs")
	}
	if attrs.Energy != "" {
		keys = append(keys, "energy_level_"+string(attrs.Energy))
	}
	return keys
}
