package calculator

import (
	"errors"
	"testing"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func juniorOfficer() entity.TravelerProfile {
	return entity.TravelerProfile{Name: "สมชาย ใจดี", Position: "นักวิชาการ", Grade: entity.GradeC1ToC8}
}

func seniorOfficer() entity.TravelerProfile {
	return entity.TravelerProfile{Name: "สมหญิง รักงาน", Position: "ผู้อำนวยการ", Grade: entity.GradeC9ToC11}
}

func mustTrip(t *testing.T, start, end string) entity.TripSchedule {
	t.Helper()
	s, err := time.Parse("2006-01-02 15:04", start)
	require.NoError(t, err)
	e, err := time.Parse("2006-01-02 15:04", end)
	require.NoError(t, err)
	trip, err := entity.NewTripSchedule(s, e, "ประชุม", "เชียงใหม่")
	require.NoError(t, err)
	return trip
}

func TestPerDiemCalculator_Calculate(t *testing.T) {
	calc := NewPerDiemCalculator(ratetable.Default())
	allMeals := entity.NewMealSet(entity.MealBreakfast, entity.MealLunch, entity.MealDinner)

	tests := []struct {
		name      string
		start     string
		end       string
		traveler  entity.TravelerProfile
		meals     []entity.MealSet
		wantDays  string
		wantNet   string
		wantItems int
	}{
		{"three days two nights", "2025-03-03 08:00", "2025-03-05 20:00", juniorOfficer(), nil, "3", "720", 1},
		{"leftover below threshold", "2025-03-03 08:00", "2025-03-05 19:00", juniorOfficer(), nil, "2", "480", 1},
		{"senior rate", "2025-03-03 08:00", "2025-03-05 20:00", seniorOfficer(), nil, "3", "810", 1},
		{"all meals on middle day", "2025-03-03 08:00", "2025-03-05 20:00", juniorOfficer(),
			[]entity.MealSet{0, allMeals, 0}, "3", "480", 1},
		{"one meal on first day", "2025-03-03 08:00", "2025-03-05 20:00", juniorOfficer(),
			[]entity.MealSet{entity.NewMealSet(entity.MealLunch)}, "3", "640", 1},
		{"meals beyond eligible days ignored", "2025-03-03 08:00", "2025-03-03 21:00", juniorOfficer(),
			[]entity.MealSet{0, allMeals, allMeals}, "1", "240", 1},
		{"same day full", "2025-03-03 07:00", "2025-03-03 19:00", juniorOfficer(), nil, "1", "240", 1},
		{"same day half", "2025-03-03 08:00", "2025-03-03 16:00", juniorOfficer(), nil, "0.5", "120", 1},
		{"half day meals clamp at zero", "2025-03-03 08:00", "2025-03-03 16:00", juniorOfficer(),
			[]entity.MealSet{entity.NewMealSet(entity.MealBreakfast, entity.MealLunch)}, "0.5", "0", 1},
		{"short trip", "2025-03-03 08:00", "2025-03-03 12:00", juniorOfficer(), nil, "0", "0", 0},
		{"zero duration", "2025-03-03 08:00", "2025-03-03 08:00", juniorOfficer(), nil, "0", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Calculate(mustTrip(t, tt.start, tt.end), tt.traveler, tt.meals)
			require.NoError(t, err)
			assertMoney(t, tt.wantDays, result.Days)
			assertMoney(t, tt.wantNet, result.Net)
			assert.Len(t, result.LineItems(), tt.wantItems)
			for _, day := range result.Breakdown {
				assert.False(t, day.Net.IsNegative(), "day %d", day.Day)
			}
		})
	}
}

func TestPerDiemCalculator_NoEligibleDay(t *testing.T) {
	calc := NewPerDiemCalculator(ratetable.Default())

	result, err := calc.Calculate(mustTrip(t, "2025-03-03 08:00", "2025-03-03 10:00"), juniorOfficer(), nil)
	require.NoError(t, err)

	assert.True(t, result.Days.IsZero())
	assert.NotNil(t, result.Breakdown)
	assert.Empty(t, result.Breakdown)
	assertMoney(t, "0", result.Net)
	assert.Empty(t, result.LineItems())
}

func TestPerDiemCalculator_AllMealsDayIsZero(t *testing.T) {
	calc := NewPerDiemCalculator(ratetable.Default())
	allMeals := entity.MealSetFromFlags(true, true, true)

	result, err := calc.Calculate(mustTrip(t, "2025-03-03 08:00", "2025-03-05 20:00"), juniorOfficer(),
		[]entity.MealSet{allMeals, allMeals, allMeals})
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 3)
	for _, day := range result.Breakdown {
		assertMoney(t, "0", day.Net)
		assertMoney(t, "240", day.Deduction)
	}
	assertMoney(t, "0", result.Net)
	assertMoney(t, "720", result.Gross)

	items := result.LineItems()
	require.Len(t, items, 1)
	assert.Equal(t, entity.SectionPerDiem, items[0].Section)
	assert.NotEmpty(t, items[0].Notes)
}

func TestPerDiemCalculator_UnknownGrade(t *testing.T) {
	calc := NewPerDiemCalculator(ratetable.Default())

	_, err := calc.Calculate(mustTrip(t, "2025-03-03 08:00", "2025-03-04 08:00"),
		entity.TravelerProfile{Grade: entity.Grade(0)}, nil)
	assert.ErrorIs(t, err, entity.ErrUnknownGrade)
}

func TestPerDiemCalculator_Deterministic(t *testing.T) {
	calc := NewPerDiemCalculator(ratetable.Default())
	trip := mustTrip(t, "2025-03-03 08:00", "2025-03-06 13:00")
	meals := []entity.MealSet{entity.NewMealSet(entity.MealDinner)}

	first, err := calc.Calculate(trip, juniorOfficer(), meals)
	require.NoError(t, err)
	second, err := calc.Calculate(trip, juniorOfficer(), meals)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAccommodationCalculator_Quote(t *testing.T) {
	calc := NewAccommodationCalculator(ratetable.Default())

	tests := []struct {
		name         string
		traveler     entity.TravelerProfile
		entry        entity.AccommodationEntry
		wantAmount   string
		wantExceeded bool
		wantNotes    int
	}{
		{
			name:       "lump sum junior",
			traveler:   juniorOfficer(),
			entry:      entity.AccommodationEntry{Method: entity.AccommodationLumpSum, Nights: 2},
			wantAmount: "1600",
		},
		{
			name:       "lump sum senior",
			traveler:   seniorOfficer(),
			entry:      entity.AccommodationEntry{Method: entity.AccommodationLumpSum, Nights: 2},
			wantAmount: "2400",
		},
		{
			name:         "actual over ceiling is capped",
			traveler:     juniorOfficer(),
			entry:        entity.AccommodationEntry{Method: entity.AccommodationActualReceipt, Nights: 1, ClaimedNightly: dec("2000")},
			wantAmount:   "1500",
			wantExceeded: true,
			wantNotes:    2,
		},
		{
			name:       "actual under ceiling",
			traveler:   juniorOfficer(),
			entry:      entity.AccommodationEntry{Method: entity.AccommodationActualReceipt, Nights: 2, ClaimedNightly: dec("1200")},
			wantAmount: "2400",
			wantNotes:  1,
		},
		{
			name:     "actual double room senior",
			traveler: seniorOfficer(),
			entry: entity.AccommodationEntry{Method: entity.AccommodationActualReceipt, RoomType: entity.RoomDouble,
				Nights: 1, ClaimedNightly: dec("1500")},
			wantAmount:   "1200",
			wantExceeded: true,
			wantNotes:    2,
		},
		{
			name:     "private training single junior",
			traveler: juniorOfficer(),
			entry: entity.AccommodationEntry{Method: entity.AccommodationLumpSum, Purpose: entity.PurposeTraining,
				Venue: entity.VenuePrivate, Nights: 3},
			wantAmount: "4800",
			wantNotes:  2,
		},
		{
			name:     "state training uses general ceiling",
			traveler: juniorOfficer(),
			entry: entity.AccommodationEntry{Method: entity.AccommodationActualReceipt, Purpose: entity.PurposeTraining,
				Venue: entity.VenueState, Nights: 1, ClaimedNightly: dec("1550")},
			wantAmount:   "1500",
			wantExceeded: true,
			wantNotes:    3,
		},
		{
			name:       "vehicle sleep pays nothing",
			traveler:   juniorOfficer(),
			entry:      entity.AccommodationEntry{Method: entity.AccommodationVehicleSleep, Nights: 1},
			wantAmount: "0",
			wantNotes:  1,
		},
		{
			name:       "zero nights",
			traveler:   juniorOfficer(),
			entry:      entity.AccommodationEntry{Method: entity.AccommodationLumpSum},
			wantAmount: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := calc.Quote(tt.entry, tt.traveler)
			require.NoError(t, err)
			assertMoney(t, tt.wantAmount, q.Amount)
			assert.Equal(t, tt.wantExceeded, q.CeilingExceeded)
			assert.Len(t, q.Notes, tt.wantNotes)
		})
	}
}

func TestAccommodationCalculator_Errors(t *testing.T) {
	calc := NewAccommodationCalculator(ratetable.Default())

	_, err := calc.Quote(entity.AccommodationEntry{Method: entity.AccommodationLumpSum, Nights: -1}, juniorOfficer())
	assert.ErrorIs(t, err, entity.ErrInvalidNights)

	_, err = calc.Quote(entity.AccommodationEntry{Method: entity.AccommodationActualReceipt, Nights: 1,
		ClaimedNightly: dec("-5")}, juniorOfficer())
	assert.ErrorIs(t, err, entity.ErrNegativeAmount)

	_, err = calc.Quote(entity.AccommodationEntry{Method: "hotel", Nights: 1}, juniorOfficer())
	assert.ErrorIs(t, err, entity.ErrInvalidValue)

	_, err = calc.Calculate([]entity.AccommodationEntry{{Method: entity.AccommodationLumpSum, Nights: 1}},
		entity.TravelerProfile{})
	assert.ErrorIs(t, err, entity.ErrUnknownGrade)
}

func TestAccommodationCalculator_Calculate(t *testing.T) {
	calc := NewAccommodationCalculator(ratetable.Default())

	items, err := calc.Calculate([]entity.AccommodationEntry{
		{Method: entity.AccommodationLumpSum, Nights: 1, Description: "ขาไป"},
		{Method: entity.AccommodationActualReceipt, Nights: 1, ClaimedNightly: dec("2000")},
	}, juniorOfficer())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, entity.SectionAccommodation, items[0].Section)
	assert.Contains(t, items[0].Label, "ขาไป")
	assertMoney(t, "800", items[0].Amount)
	assert.False(t, items[0].CeilingExceeded)

	assertMoney(t, "1500", items[1].Amount)
	assert.True(t, items[1].CeilingExceeded)
}

func TestTransportationCalculator_Quote(t *testing.T) {
	calc := NewTransportationCalculator(ratetable.Default())

	tests := []struct {
		name       string
		leg        TransportLeg
		wantAmount string
		wantCapped bool
	}{
		{"private car 100 km", PrivateVehicleTrip{Vehicle: entity.VehiclePrivateCar, DistanceKm: dec("100")}, "400.00", false},
		{"motorcycle", PrivateVehicleTrip{Vehicle: entity.VehicleMotorcycle, DistanceKm: dec("12.5")}, "25", false},
		{"mileage rounds half up", PrivateVehicleTrip{Vehicle: entity.VehiclePrivateCar, DistanceKm: dec("0.00125")}, "0.01", false},
		{"taxi inside included distance", TaxiTrip{DistanceKm: dec("0.5")}, "35", false},
		{"taxi zero distance", TaxiTrip{DistanceKm: decimal.Zero}, "35", false},
		{"taxi with surcharges", TaxiTrip{DistanceKm: dec("10"), TrafficMinutes: 5, AppBooking: true, Airport: true}, "178.5", false},
		{"taxi intraprovince uncapped", TaxiTrip{Route: entity.TaxiIntraProvince, DistanceKm: dec("100")}, "883.5", false},
		{"taxi cross province capped", TaxiTrip{Route: entity.TaxiCrossOther, DistanceKm: dec("100")}, "500", true},
		{"taxi flat fare", TaxiTrip{Route: entity.TaxiCrossBangkok, FlatFare: decimal.NewNullDecimal(dec("250"))}, "250", false},
		{"public fare", FareTrip{Mode: entity.FareTrain, Fare: dec("45")}, "45", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := calc.Quote(tt.leg)
			require.NoError(t, err)
			assertMoney(t, tt.wantAmount, q.Amount)
			assert.Equal(t, tt.wantCapped, q.Capped)
			assert.Equal(t, tt.leg.Kind(), q.Kind)
		})
	}
}

func TestTransportationCalculator_TaxiMonotonic(t *testing.T) {
	calc := NewTransportationCalculator(ratetable.Default())

	prev := decimal.Zero
	for tenths := 0; tenths <= 300; tenths += 5 {
		q, err := calc.EstimateTaxi(TaxiTrip{DistanceKm: decimal.New(int64(tenths), -1)})
		require.NoError(t, err)
		assert.True(t, q.Amount.GreaterThanOrEqual(prev), "estimate dropped at %d tenths", tenths)
		assert.True(t, q.Amount.GreaterThanOrEqual(dec("35")))
		prev = q.Amount
	}
}

func TestTransportationCalculator_Calculate(t *testing.T) {
	calc := NewTransportationCalculator(ratetable.Default())

	t.Run("one item per leg in order", func(t *testing.T) {
		leg := PrivateVehicleTrip{Vehicle: entity.VehiclePrivateCar, DistanceKm: dec("50")}
		items, err := calc.Calculate([]TransportLeg{leg, leg, TaxiTrip{DistanceKm: dec("1")}})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assertMoney(t, "200", items[0].Amount)
		assertMoney(t, "200", items[1].Amount)
		assertMoney(t, "35", items[2].Amount)
		for _, item := range items {
			assert.Equal(t, entity.SectionTransportation, item.Section)
		}
	})

	t.Run("capped taxi is flagged", func(t *testing.T) {
		items, err := calc.Calculate([]TransportLeg{TaxiTrip{Route: entity.TaxiCrossBangkok, DistanceKm: dec("90")}})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].CeilingExceeded)
		assertMoney(t, "600", items[0].Amount)
	})

	t.Run("negative distance reports leg", func(t *testing.T) {
		_, err := calc.Calculate([]TransportLeg{
			FareTrip{Mode: entity.FareBus, Fare: dec("20")},
			PrivateVehicleTrip{Vehicle: entity.VehiclePrivateCar, DistanceKm: dec("-3"), Description: "กลับ"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entity.ErrInvalidDistance))

		var distErr *entity.InvalidDistanceError
		require.True(t, errors.As(err, &distErr))
		assert.Equal(t, 1, distErr.Index)
		assert.Equal(t, KindPrivateVehicle, distErr.Kind)
		assert.Equal(t, "กลับ", distErr.Description)
	})

	t.Run("negative taxi distance", func(t *testing.T) {
		_, err := calc.Calculate([]TransportLeg{TaxiTrip{DistanceKm: dec("-0.1")}})
		assert.ErrorIs(t, err, entity.ErrInvalidDistance)
	})

	t.Run("negative fare", func(t *testing.T) {
		_, err := calc.Calculate([]TransportLeg{FareTrip{Fare: dec("-1")}})
		assert.ErrorIs(t, err, entity.ErrNegativeAmount)
	})
}

func TestTrainingMealCalculator_Calculate(t *testing.T) {
	calc := NewTrainingMealCalculator(ratetable.Default())

	t.Run("type A private venue", func(t *testing.T) {
		q, err := calc.Calculate(entity.GradeC9ToC11, TrainingMealRequest{Venue: entity.VenuePrivate, Meals: 2, Snacks: 2})
		require.NoError(t, err)
		assert.Equal(t, entity.TrainingTypeA, q.Type)
		assertMoney(t, "1400", q.MealTotal)
		assertMoney(t, "100", q.SnackTotal)
		assertMoney(t, "1500", q.Amount)
		assert.Len(t, q.LineItems(), 1)
	})

	t.Run("type B state venue", func(t *testing.T) {
		q, err := calc.Calculate(entity.GradeC1ToC8, TrainingMealRequest{Venue: entity.VenueState, Meals: 3})
		require.NoError(t, err)
		assert.Equal(t, entity.TrainingTypeB, q.Type)
		assertMoney(t, "600", q.Amount)
	})

	t.Run("nothing claimed", func(t *testing.T) {
		q, err := calc.Calculate(entity.GradeC1ToC8, TrainingMealRequest{})
		require.NoError(t, err)
		assert.Empty(t, q.LineItems())
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := calc.Calculate(entity.GradeC1ToC8, TrainingMealRequest{Meals: -1})
		assert.ErrorIs(t, err, entity.ErrNegativeAmount)
	})
}
