package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Grade
		wantErr  bool
	}{
		{name: "lower band label", input: "C1-C8", expected: GradeC1ToC8},
		{name: "upper band label", input: "C9-C11", expected: GradeC9ToC11},
		{name: "lower case label with spaces", input: " c9 - c11 ", expected: GradeC9ToC11},
		{name: "single level in lower band", input: "C5", expected: GradeC1ToC8},
		{name: "single level at band edge", input: "C8", expected: GradeC1ToC8},
		{name: "single level in upper band", input: "c10", expected: GradeC9ToC11},
		{name: "level above table", input: "C12", wantErr: true},
		{name: "level zero", input: "C0", wantErr: true},
		{name: "garbage", input: "manager", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGrade(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownGrade))
				var gradeErr *UnknownGradeError
				require.True(t, errors.As(err, &gradeErr))
				assert.Equal(t, tt.input, gradeErr.Grade)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, g)
		})
	}
}

func TestGrade_Ordering(t *testing.T) {
	assert.True(t, GradeC9ToC11 > GradeC1ToC8)
	assert.Equal(t, TrainingTypeA, GradeC9ToC11.TrainingType())
	assert.Equal(t, TrainingTypeB, GradeC1ToC8.TrainingType())
	assert.False(t, Grade(0).Valid())
}

func TestGrade_TextRoundTrip(t *testing.T) {
	text, err := GradeC9ToC11.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "C9-C11", string(text))

	var g Grade
	require.NoError(t, g.UnmarshalText([]byte("C3")))
	assert.Equal(t, GradeC1ToC8, g)

	_, err = Grade(7).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownGrade)
}

func TestParseEnums(t *testing.T) {
	method, err := ParseAccommodationMethod("ACTUAL")
	require.NoError(t, err)
	assert.Equal(t, AccommodationActualReceipt, method)

	room, err := ParseRoomType("")
	require.NoError(t, err)
	assert.Equal(t, RoomSingle, room)

	route, err := ParseTaxiRoute("cross_bkk")
	require.NoError(t, err)
	assert.Equal(t, TaxiCrossBangkok, route)

	_, err = ParseVehicleKind("helicopter")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "helicopter")
}

func TestNewTripSchedule(t *testing.T) {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewTripSchedule(start, start.Add(-time.Minute), "meeting", "")
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("accepts zero duration", func(t *testing.T) {
		trip, err := NewTripSchedule(start, start, "meeting", "")
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), trip.Duration())
		assert.Equal(t, 0, trip.Nights(0))
	})

	t.Run("derives days and remainder", func(t *testing.T) {
		end := time.Date(2025, 3, 5, 20, 30, 0, 0, time.UTC)
		trip, err := NewTripSchedule(start, end, "audit", "เชียงใหม่")
		require.NoError(t, err)
		assert.Equal(t, 2, trip.WholeDays())
		assert.Equal(t, 12*time.Hour+30*time.Minute, trip.Remainder())
		assert.Equal(t, 2, trip.Nights(0))
		assert.True(t, trip.Overnight(0))
		assert.Equal(t, "เชียงใหม่", trip.Destination())
	})
}

func TestTripSchedule_Nights(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		cutoff int
		want   int
	}{
		{
			name:  "same day trip",
			start: time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 10, 22, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "return exactly at midnight is not a night",
			start: time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "return after midnight is a night",
			start: time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 11, 0, 30, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:   "return before cutoff hour is not a night",
			start:  time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 1, 11, 1, 30, 0, 0, time.UTC),
			cutoff: 2,
			want:   0,
		},
		{
			name:  "three nights",
			start: time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC),
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip, err := NewTripSchedule(tt.start, tt.end, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, trip.Nights(tt.cutoff))
		})
	}
}

func TestMealSet(t *testing.T) {
	assert.Equal(t, 0, MealSet(0).Count())
	assert.Equal(t, 3, NewMealSet(MealBreakfast, MealLunch, MealDinner).Count())

	s := MealSetFromFlags(true, false, true)
	assert.True(t, s.Has(MealBreakfast))
	assert.False(t, s.Has(MealLunch))
	assert.Equal(t, 2, s.Count())

	// out-of-range bits are dropped
	assert.Equal(t, 0, NewMealSet(Meal(1<<6)).Count())
}
