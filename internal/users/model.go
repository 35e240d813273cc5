package users

import (
	"time"

	"petmatch-backend/internal/recommendations/engine"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	IsGuest   bool      `json:"isGuest"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preferences holds a user's declared adoption preferences. Every field is optional.
type Preferences struct {
	UserID            string    `json:"userId"`
	PreferredSpecies  string    `json:"preferredSpecies,omitempty"`
	PreferredSize     string    `json:"preferredSize,omitempty"`
	PreferredEnergy   string    `json:"preferredEnergy,omitempty"`
	AgeMinYears       *float64  `json:"ageMinYears,omitempty"`
	AgeMaxYears       *float64  `json:"ageMaxYears,omitempty"`
	GoodWithChildren  bool      `json:"goodWithChildren"`
	GoodWithOtherPets bool      `json:"goodWithOtherPets"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToEngine converts stored preferences into the ranking form.
func (p Preferences) ToEngine() engine.Preference {
	return engine.Preference{
		Species:           p.PreferredSpecies,
		Size:              engine.ParseSize(p.PreferredSize),
		Energy:            engine.ParseEnergy(p.PreferredEnergy),
		AgeMinYears:       p.AgeMinYears,
		AgeMaxYears:       p.AgeMaxYears,
		GoodWithChildren:  p.GoodWithChildren,
		GoodWithOtherPets: p.GoodWithOtherPets,
	}
}
