package calculator

import (
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
	"github.com/shopspring/decimal"
)

// TrainingMealRequest asks for the meal budget of a training course.
type TrainingMealRequest struct {
	Venue  entity.Venue
	Meals  int
	Snacks int
}

// TrainingMealQuote is the training meal budget.
type TrainingMealQuote struct {
	Type       entity.TrainingType `json:"training_type"`
	Venue      entity.Venue        `json:"venue"`
	MealRate   decimal.Decimal     `json:"meal_rate"`
	SnackRate  decimal.Decimal     `json:"snack_rate"`
	Meals      int                 `json:"meals"`
	Snacks     int                 `json:"snacks"`
	MealTotal  decimal.Decimal     `json:"meal_total"`
	SnackTotal decimal.Decimal     `json:"snack_total"`
	Amount     decimal.Decimal     `json:"amount"`
}

// LineItems returns the training meal item, or none when nothing was claimed.
func (q TrainingMealQuote) LineItems() []entity.LineItem {
	if q.Meals == 0 && q.Snacks == 0 {
		return nil
	}
	return []entity.LineItem{{
		Section: entity.SectionTrainingMeal,
		Label:   fmt.Sprintf("ค่าอาหารและอาหารว่าง ฝึกอบรมประเภท %s", q.Type),
		Detail: fmt.Sprintf("อาหาร %d มื้อ x %s บาท, อาหารว่าง %d มื้อ x %s บาท",
			q.Meals, q.MealRate.StringFixed(2), q.Snacks, q.SnackRate.StringFixed(2)),
		Amount: q.Amount,
	}}
}

// TrainingMealCalculator computes training meal budgets. Type A training
// applies to grade C9-C11, type B to C1-C8.
type TrainingMealCalculator struct {
	tables *ratetable.Tables
}

// NewTrainingMealCalculator creates a training meal calculator over tables.
func NewTrainingMealCalculator(tables *ratetable.Tables) *TrainingMealCalculator {
	return &TrainingMealCalculator{tables: tables}
}

// Calculate returns the meal budget for grade at the requested venue.
func (c *TrainingMealCalculator) Calculate(grade entity.Grade, req TrainingMealRequest) (TrainingMealQuote, error) {
	if !grade.Valid() {
		return TrainingMealQuote{}, &entity.UnknownGradeError{Grade: grade.String()}
	}
	if req.Meals < 0 || req.Snacks < 0 {
		return TrainingMealQuote{}, fmt.Errorf("%w: meals %d snacks %d", entity.ErrNegativeAmount, req.Meals, req.Snacks)
	}
	venue := req.Venue
	if venue == "" {
		venue = entity.VenueState
	}
	tt := grade.TrainingType()
	rate, err := c.tables.TrainingMealRate(venue, tt)
	if err != nil {
		return TrainingMealQuote{}, err
	}

	mealTotal := rate.Meal.Mul(decimal.NewFromInt(int64(req.Meals)))
	snackTotal := rate.Snack.Mul(decimal.NewFromInt(int64(req.Snacks)))
	return TrainingMealQuote{
		Type:       tt,
		Venue:      venue,
		MealRate:   rate.Meal,
		SnackRate:  rate.Snack,
		Meals:      req.Meals,
		Snacks:     req.Snacks,
		MealTotal:  entity.RoundMoney(mealTotal),
		SnackTotal: entity.RoundMoney(snackTotal),
		Amount:     entity.SumMoney(mealTotal, snackTotal),
	}, nil
}
