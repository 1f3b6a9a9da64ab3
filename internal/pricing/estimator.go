package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/blazinaj/roboconfig-sub000/internal/catalog"
	"github.com/blazinaj/roboconfig-sub000/internal/machines"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

// Estimator prices whole machines by pulling quotes per assembled component
// and taking the cheapest in-stock offer for each.
type Estimator struct {
	Source              PriceSource
	ComponentRepository *catalog.ComponentRepository
	MachineRepository   *machines.MachineRepository
}

func NewEstimator(source PriceSource, cr *catalog.ComponentRepository, mr *machines.MachineRepository) *Estimator {
	return &Estimator{
		Source:              source,
		ComponentRepository: cr,
		MachineRepository:   mr,
	}
}

func (e *Estimator) QuoteComponent(ctx context.Context, componentID int) ([]models.PriceQuote, error) {
	component, err := e.ComponentRepository.GetComponent(componentID)
	if err != nil {
		return nil, err
	}

	return e.Source.FetchQuotes(ctx, component)
}

func (e *Estimator) EstimateMachine(ctx context.Context, machineID int) (*models.MachineEstimate, error) {
	machine, err := e.MachineRepository.GetMachine(machineID)
	if err != nil {
		return nil, err
	}

	estimate := &models.MachineEstimate{
		MachineID: machineID,
		Currency:  "USD",
		Total:     decimal.Zero,
		Lines:     []models.EstimateLine{},
	}

	for _, part := range machine.Components {
		component, err := e.ComponentRepository.GetComponent(part.ComponentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load component %d: %w", part.ComponentID, err)
		}

		quotes, err := e.Source.FetchQuotes(ctx, component)
		if err != nil {
			return nil, fmt.Errorf("failed to quote component %d: %w", part.ComponentID, err)
		}

		best, ok := cheapestQuote(quotes)
		if !ok {
			estimate.Missing = append(estimate.Missing, part.ComponentID)
			continue
		}

		line := models.EstimateLine{
			ComponentID:   part.ComponentID,
			ComponentName: component.Name,
			Quantity:      part.Quantity,
			UnitPrice:     best.Price,
			Source:        best.Source,
		}
		estimate.Lines = append(estimate.Lines, line)
		estimate.Total = estimate.Total.Add(best.Price.Mul(decimal.NewFromInt(int64(part.Quantity))))
	}

	return estimate, nil
}

// cheapestQuote prefers in-stock offers; only when nothing is in stock does
// it fall back to the cheapest offer overall.
func cheapestQuote(quotes []models.PriceQuote) (models.PriceQuote, bool) {
	var best models.PriceQuote
	found := false
	for _, quote := range quotes {
		if !quote.InStock {
			continue
		}
		if !found || quote.Price.LessThan(best.Price) {
			best = quote
			found = true
		}
	}
	if found {
		return best, true
	}

	for _, quote := range quotes {
		if !found || quote.Price.LessThan(best.Price) {
			best = quote
			found = true
		}
	}
	return best, found
}
