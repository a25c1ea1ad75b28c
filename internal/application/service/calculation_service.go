package service

import (
	"context"
	"errors"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/calculator"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/expense"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
)

// CalculationService computes claims against the active regulation tables
type CalculationService interface {
	Calculate(ctx context.Context, input *ClaimInput) (*expense.Result, error)
	EstimateTaxi(ctx context.Context, input TransportInput) (*calculator.TransportQuote, error)
	Definition() ratetable.Definition
}

type calculationServiceImpl struct {
	calculator *expense.Calculator
	logger     Logger
}

// NewCalculationService creates a new CalculationService
func NewCalculationService(calc *expense.Calculator, logger Logger) CalculationService {
	return &calculationServiceImpl{
		calculator: calc,
		logger:     logger,
	}
}

// Calculate converts the input and runs every calculator. Domain errors
// are returned unwrapped so callers can match them.
func (s *calculationServiceImpl) Calculate(ctx context.Context, input *ClaimInput) (*expense.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, entity.ErrEmptyClaim
	}

	req, err := input.ToRequest()
	if err != nil {
		s.logger.Info("Rejected claim input", "error", err.Error())
		return nil, err
	}

	start := time.Now()
	result, err := s.calculator.Calculate(req)
	if err != nil {
		if isUserError(err) {
			s.logger.Info("Claim calculation rejected", "traveler", req.Traveler.Name, "error", err.Error())
		} else {
			s.logger.Error("Claim calculation failed", "traveler", req.Traveler.Name, "error", err)
		}
		return nil, err
	}

	s.logger.Info("Claim calculated",
		"traveler", req.Traveler.Name,
		"grade", req.Traveler.Grade.String(),
		"items", len(result.Summary.Items),
		"grand_total", result.Summary.GrandTotal.StringFixed(2),
		"duration", time.Since(start).String())
	return result, nil
}

// EstimateTaxi quotes one taxi ride
func (s *calculationServiceImpl) EstimateTaxi(ctx context.Context, input TransportInput) (*calculator.TransportQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	trip, err := input.ToTaxiTrip()
	if err != nil {
		return nil, err
	}
	quote, err := s.calculator.Transport().EstimateTaxi(trip)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Definition returns a copy of the active regulation tables
func (s *calculationServiceImpl) Definition() ratetable.Definition {
	return s.calculator.Tables().Definition()
}

// isUserError reports whether err comes from invalid claim content rather
// than a system failure.
func isUserError(err error) bool {
	for _, target := range []error{
		entity.ErrUnknownGrade,
		entity.ErrInvalidDistance,
		entity.ErrEmptyClaim,
		entity.ErrInvalidSchedule,
		entity.ErrNegativeAmount,
		entity.ErrInvalidNights,
		entity.ErrInvalidValue,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
