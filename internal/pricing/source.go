package pricing

import (
	"context"

	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

// PriceSource fetches vendor quotes for a catalog component. Callers depend
// on this interface only, so the simulated source can be swapped for a real
// marketplace client via configuration.
type PriceSource interface {
	FetchQuotes(ctx context.Context, component *models.Component) ([]models.PriceQuote, error)
}
