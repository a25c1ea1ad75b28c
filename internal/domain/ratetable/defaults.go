package ratetable

import (
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func baht(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func bahtString(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// DefaultDefinition returns the regulation figures currently in force:
// the Ministry of Finance travel expense rates (2023 amendment) and the
// Department of Land Transport taxi meter tariff.
func DefaultDefinition() Definition {
	return Definition{
		Rates: map[entity.Grade]RateRow{
			entity.GradeC1ToC8: {
				PerDiemDaily:                 baht(240),
				AccommodationLumpSum:         baht(800),
				AccommodationCeiling:         baht(1500),
				AccommodationCeilingDouble:   baht(850),
				TrainingPrivateCeilingSingle: baht(1600),
				TrainingPrivateCeilingDouble: baht(1000),
			},
			entity.GradeC9ToC11: {
				PerDiemDaily:                 baht(270),
				AccommodationLumpSum:         baht(1200),
				AccommodationCeiling:         baht(2200),
				AccommodationCeilingDouble:   baht(1200),
				TrainingPrivateCeilingSingle: baht(2700),
				TrainingPrivateCeilingDouble: baht(1500),
			},
		},
		Mileage: map[entity.VehicleKind]decimal.Decimal{
			entity.VehiclePrivateCar: baht(4),
			entity.VehicleMotorcycle: baht(2),
		},
		Taxi: TaxiFares{
			BaseFare: map[entity.TaxiRoute]decimal.Decimal{
				entity.TaxiIntraProvince: baht(35),
				entity.TaxiCrossBangkok:  baht(35),
				entity.TaxiCrossOther:    baht(35),
			},
			IncludedKm: baht(1),
			Tiers: []TaxiTier{
				{UpToKm: baht(10), PerKm: bahtString("6.50")},
				{UpToKm: baht(20), PerKm: baht(7)},
				{UpToKm: baht(40), PerKm: baht(8)},
				{UpToKm: baht(60), PerKm: bahtString("8.50")},
				{UpToKm: baht(80), PerKm: baht(9)},
				{PerKm: bahtString("10.50")},
			},
			TrafficPerMinute: baht(3),
			AppBookingFee:    baht(20),
			AirportFee:       baht(50),
			RouteCap: map[entity.TaxiRoute]decimal.Decimal{
				entity.TaxiCrossBangkok: baht(600),
				entity.TaxiCrossOther:   baht(500),
			},
		},
		TrainingMeals: map[entity.Venue]map[entity.TrainingType]MealRate{
			entity.VenueState: {
				entity.TrainingTypeA: {Meal: baht(400), Snack: baht(35)},
				entity.TrainingTypeB: {Meal: baht(200), Snack: baht(35)},
			},
			entity.VenuePrivate: {
				entity.TrainingTypeA: {Meal: baht(700), Snack: baht(50)},
				entity.TrainingTypeB: {Meal: baht(400), Snack: baht(50)},
			},
		},
		Policy: Policy{
			PartialDayThreshold: 12 * time.Hour,
			HalfDayThreshold:    6 * time.Hour,
			OvernightCutoffHour: 0,
			MealDeduction:       Fraction{Numerator: 1, Denominator: 3},
		},
	}
}

// Default returns the built-in tables. It panics only if DefaultDefinition
// itself is incomplete.
func Default() *Tables {
	t, err := New(DefaultDefinition())
	if err != nil {
		panic(err)
	}
	return t
}
