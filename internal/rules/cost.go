package rules

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
)

type ResourceSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

type FuelingSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Fueling, error)
}

// CostCalculator prices a booking: tiered infrastructure rent plus the fixed
// cost of an optional fueling operation.
type CostCalculator struct {
	resources ResourceSource
	fuelings  FuelingSource
}

func NewCostCalculator(resources ResourceSource, fuelings FuelingSource) *CostCalculator {
	return &CostCalculator{resources: resources, fuelings: fuelings}
}

// Compute returns the total cost of the interval. A dangling resource or
// fueling reference contributes nothing to the total and is logged as a
// warning.
func (c *CostCalculator) Compute(ctx context.Context, resourceID, fuelingID *int64, start, end time.Time) (float64, error) {
	total := 0.0

	if resourceID != nil {
		res, err := c.resources.GetByID(ctx, *resourceID)
		switch {
		case isNotFound(err):
			log.Printf("WARNING: cost calculation references missing resource %d, charging nothing for it", *resourceID)
		case err != nil:
			return 0, err
		default:
			days := end.Sub(start).Hours() / 24
			switch {
			case days >= 30:
				total += days / 30 * res.MonthRate
			case days >= 7:
				total += days / 7 * res.WeekRate
			default:
				total += days * res.DayRate
			}
		}
	}

	if fuelingID != nil {
		fueling, err := c.fuelings.GetByID(ctx, *fuelingID)
		switch {
		case isNotFound(err):
			log.Printf("WARNING: cost calculation references missing fueling %d, charging nothing for it", *fuelingID)
		case err != nil:
			return 0, err
		default:
			total += fueling.Cost
		}
	}

	return total, nil
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.As(err, &nf)
}
