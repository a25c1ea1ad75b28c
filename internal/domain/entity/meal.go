package entity

import "math/bits"

// Meal is one meal slot of a travel day.
type Meal uint8

const (
	MealBreakfast Meal = 1 << iota
	MealLunch
	MealDinner
)

const allMeals = MealBreakfast | MealLunch | MealDinner

// MealsPerDay is the number of meal slots in a day.
const MealsPerDay = 3

// MealSet is the set of meals provided by the host on one day.
// Bits outside the three slots are never stored.
type MealSet uint8

// NewMealSet builds a set from the given meals.
func NewMealSet(meals ...Meal) MealSet {
	var s MealSet
	for _, m := range meals {
		s = s.With(m)
	}
	return s
}

// MealSetFromFlags builds a set from per-slot flags.
func MealSetFromFlags(breakfast, lunch, dinner bool) MealSet {
	var s MealSet
	if breakfast {
		s = s.With(MealBreakfast)
	}
	if lunch {
		s = s.With(MealLunch)
	}
	if dinner {
		s = s.With(MealDinner)
	}
	return s
}

// With returns the set including m.
func (s MealSet) With(m Meal) MealSet {
	return s | MealSet(m&allMeals)
}

// Has reports whether m was provided.
func (s MealSet) Has(m Meal) bool {
	return s&MealSet(m) != 0
}

// Count is the number of provided meals.
func (s MealSet) Count() int {
	return bits.OnesCount8(uint8(s) & uint8(allMeals))
}
