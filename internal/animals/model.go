package animals

import (
	"time"

	"petmatch-backend/internal/recommendations/engine"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
	StatusWithdrawn Status = "withdrawn"
)

// Animal is an adoptable animal record as stored by the registry.
// AgeYears and AgeMonths are both optional; the total age combines them.
type Animal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Species      string    `json:"species"`
	Breed        string    `json:"breed,omitempty"`
	Size         string    `json:"size,omitempty"`
	EnergyLevel  string    `json:"energyLevel,omitempty"`
	AgeYears     *int      `json:"ageYears,omitempty"`
	AgeMonths    *int      `json:"ageMonths,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	GoodWithKids bool      `json:"goodWithKids"`
	GoodWithCats bool      `json:"goodWithCats"`
	GoodWithDogs bool      `json:"goodWithDogs"`
	Status       Status    `json:"status"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TotalAgeMonths returns years*12+months, or nil when neither part is known.
func (a Animal) TotalAgeMonths() *int {
	if a.AgeYears == nil && a.AgeMonths == nil {
		return nil
	}
	total := 0
	if a.AgeYears != nil {
		total += *a.AgeYears * 12
	}
	if a.AgeMonths != nil {
		total += *a.AgeMonths
	}
	return &total
}

// Available reports whether the animal can be recommended.
func (a Animal) Available() bool {
	return a.Status == StatusAvailable
}

// Profile converts the record into the ranking snapshot.
func (a Animal) Profile() engine.Animal {
	return engine.Animal{
		ID:           a.ID,
		Species:      a.Species,
		Breed:        a.Breed,
		Size:         engine.ParseSize(a.Size),
		Energy:       engine.ParseEnergy(a.EnergyLevel),
		AgeMonths:    a.TotalAgeMonths(),
		Gender:       a.Gender,
		GoodWithKids: a.GoodWithKids,
		GoodWithCats: a.GoodWithCats,
		GoodWithDogs: a.GoodWithDogs,
		Available:    a.Available(),
	}
}

// Profiles converts a slice of records.
func Profiles(list []Animal) []engine.Animal {
	out := make([]engine.Animal, 0, len(list))
	for _, a := range list {
		out = append(out, a.Profile())
	}
	return out
}

func intPtr(v int) *int {
	return &v
}
