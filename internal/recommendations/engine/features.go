package engine

import "strings"

// AgeBucket is the coarse age class used for content tokens and reasons.
type AgeBucket string

const (
	AgeYoung  AgeBucket = "young"
	AgeAdult  AgeBucket = "adult"
	AgeSenior AgeBucket = "senior"
)

const (
	youngUpperMonths = 24
	adultUpperMonths = 96
)

// BucketForMonths maps an age in months to its bucket.
func BucketForMonths(months int) AgeBucket {
	switch {
	case months < youngUpperMonths:
		return AgeYoung
	case months < adultUpperMonths:
		return AgeAdult
	default:
		return AgeSenior
	}
}

// Attributes is the discrete attribute tuple of an animal, used for counting.
type Attributes struct {
	Species      string
	Breed        string
	Size         Size
	Energy       Energy
	AgeMonths    int
	HasAge       bool
	GoodWithKids bool
	GoodWithCats bool
	GoodWithDogs bool
}

// ExtractAttributes normalizes an animal into its attribute tuple.
func ExtractAttributes(a Animal) Attributes {
	attrs := Attributes{
		Species:      strings.TrimSpace(a.Species),
		Breed:        strings.TrimSpace(a.Breed),
		Size:         a.Size,
		Energy:       a.Energy,
		GoodWithKids: a.GoodWithKids,
		GoodWithCats: a.GoodWithCats,
		GoodWithDogs: a.GoodWithDogs,
	}
	if a.AgeMonths != nil {
		attrs.AgeMonths = *a.AgeMonths
		attrs.HasAge = true
	}
	return attrs
}

// ContentTokens returns the content token sequence of an animal in fixed order:
// species, breed, size, age bucket, energy, then compatibility flags.
// Missing attributes emit no token.
func ContentTokens(a Animal) []string {
	attrs := ExtractAttributes(a)
	tokens := make([]string, 0, 8)
	if attrs.Species != "" {
		tokens = append(tokens, "species_"+tokenValue(attrs.Species))
	}
	if attrs.Breed != "" {
		tokens = append(tokens, "breed_"+tokenValue(attrs.Breed))
	}
	if attrs.Size != "" {
		tokens = append(tokens, "size_"+tokenValue(string(attrs.Size)))
	}
	if attrs.HasAge {
		tokens = append(tokens, "age_"+string(BucketForMonths(attrs.AgeMonths)))
	}
	if attrs.Energy != "" {
		tokens = append(tokens, "energy_"+tokenValue(string(attrs.Energy)))
	}
	if attrs.GoodWithKids {
		tokens = append(tokens, "good_with_kids")
	}
	if attrs.GoodWithCats {
		tokens = append(tokens, "good_with_cats")
	}
	if attrs.GoodWithDogs {
		tokens = append(tokens, "good_with_dogs")
	}
	return tokens
}

// tokenValue lowercases and joins whitespace-separated words with underscores,
// so multi-word values like "Golden Retriever" stay a single token.
func tokenValue(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "_")
}
