package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePreference(t *testing.T) {
	dog := Animal{Species: "Dog", Size: SizeMedium, Energy: EnergyHigh, AgeMonths: Months(24), GoodWithKids: true}
	cat := Animal{Species: "Cat", Size: SizeMedium, AgeMonths: Months(12), GoodWithCats: true}
	rabbit := Animal{Species: "Rabbit", Size: SizeSmall}
	noAge := Animal{Species: "Dog"}

	cases := []struct {
		name string
		cand Animal
		pref Preference
		want float64
	}{
		{name: "nothing specified", cand: dog, pref: Preference{}, want: 0},
		{name: "species match", cand: dog, pref: Preference{Species: "Dog"}, want: 1},
		{name: "species case-insensitive", cand: dog, pref: Preference{Species: "dog"}, want: 1},
		{name: "species miss", cand: cat, pref: Preference{Species: "Dog"}, want: 0},
		{name: "small animal group", cand: rabbit, pref: Preference{Species: "Small Animal"}, want: 1},
		{name: "small animal excludes dogs", cand: dog, pref: Preference{Species: "Small Animal"}, want: 0},
		{name: "species and size", cand: cat, pref: Preference{Species: "Dog", Size: SizeMedium}, want: 2.0 / 6.0},
		{name: "age inclusive bounds", cand: dog, pref: Preference{AgeMinYears: floatPtr(2), AgeMaxYears: floatPtr(2)}, want: 1},
		{name: "open upper bound", cand: dog, pref: Preference{AgeMinYears: floatPtr(1)}, want: 1},
		{name: "age unknown", cand: noAge, pref: Preference{AgeMinYears: floatPtr(0), AgeMaxYears: floatPtr(20)}, want: 0},
		{name: "energy", cand: dog, pref: Preference{Energy: EnergyLow}, want: 0},
		{name: "kids", cand: dog, pref: Preference{GoodWithChildren: true}, want: 1},
		{name: "other pets via cats", cand: cat, pref: Preference{GoodWithOtherPets: true}, want: 1},
		{name: "other pets miss", cand: rabbit, pref: Preference{GoodWithOtherPets: true}, want: 0},
		{
			name: "all criteria",
			cand: dog,
			pref: Preference{
				Species:           "Dog",
				Size:              SizeMedium,
				Energy:            EnergyHigh,
				AgeMinYears:       floatPtr(1),
				AgeMaxYears:       floatPtr(3),
				GoodWithChildren:  true,
				GoodWithOtherPets: true,
			},
			want: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScorePreference(tc.cand, tc.pref)
			assert.InDelta(t, tc.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}
