package expense

import (
	"github.com/garyjia/gov-travel-expense/internal/domain/calculator"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
)

// ClaimRequest is everything needed to compute one travel claim.
type ClaimRequest struct {
	Traveler      entity.TravelerProfile
	Trip          entity.TripSchedule
	Meals         []entity.MealSet
	Accommodation []entity.AccommodationEntry
	Transport     []calculator.TransportLeg
	TrainingMeals *calculator.TrainingMealRequest
}

// Result is the computed claim with the intermediate per-section results.
type Result struct {
	Summary      *entity.ExpenseSummary
	PerDiem      calculator.PerDiemResult
	TrainingMeal *calculator.TrainingMealQuote
}

// Calculator runs every calculator against one shared set of tables.
// It holds no per-request state and is safe for concurrent use.
type Calculator struct {
	tables        *ratetable.Tables
	perDiem       *calculator.PerDiemCalculator
	accommodation *calculator.AccommodationCalculator
	transport     *calculator.TransportationCalculator
	training      *calculator.TrainingMealCalculator
	aggregator    *Aggregator
}

// NewCalculator wires the calculators over tables.
func NewCalculator(tables *ratetable.Tables) *Calculator {
	return &Calculator{
		tables:        tables,
		perDiem:       calculator.NewPerDiemCalculator(tables),
		accommodation: calculator.NewAccommodationCalculator(tables),
		transport:     calculator.NewTransportationCalculator(tables),
		training:      calculator.NewTrainingMealCalculator(tables),
		aggregator:    NewAggregator(),
	}
}

// Tables returns the rate tables the calculator uses.
func (c *Calculator) Tables() *ratetable.Tables {
	return c.tables
}

// Transport returns the transportation calculator, used for standalone taxi estimates.
func (c *Calculator) Transport() *calculator.TransportationCalculator {
	return c.transport
}

// Calculate computes the full claim. Calculator errors are returned unchanged.
func (c *Calculator) Calculate(req ClaimRequest) (*Result, error) {
	perDiem, err := c.perDiem.Calculate(req.Trip, req.Traveler, req.Meals)
	if err != nil {
		return nil, err
	}
	lodging, err := c.accommodation.Calculate(req.Accommodation, req.Traveler)
	if err != nil {
		return nil, err
	}
	transport, err := c.transport.Calculate(req.Transport)
	if err != nil {
		return nil, err
	}

	result := &Result{PerDiem: perDiem}
	var trainingItems []entity.LineItem
	if req.TrainingMeals != nil {
		q, err := c.training.Calculate(req.Traveler.Grade, *req.TrainingMeals)
		if err != nil {
			return nil, err
		}
		result.TrainingMeal = &q
		trainingItems = q.LineItems()
	}

	summary, err := c.aggregator.Aggregate(Sections{
		PerDiem:        perDiem.LineItems(),
		Accommodation:  lodging,
		Transportation: transport,
		TrainingMeal:   trainingItems,
	})
	if err != nil {
		return nil, err
	}
	result.Summary = summary
	return result, nil
}
