package pricing

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

// categoryMultipliers scales the base price per component category.
var categoryMultipliers = map[metadata.Category]float64{
	metadata.CategoryDrive:              1.4,
	metadata.CategoryController:         2.2,
	metadata.CategoryPower:              1.1,
	metadata.CategoryCommunication:      0.9,
	metadata.CategorySoftware:           0.6,
	metadata.CategoryObjectManipulation: 2.8,
	metadata.CategorySensors:            1.6,
	metadata.CategoryChassis:            1.9,
}

var vendors = []struct {
	name string
	host string
}{
	{"RoboMart", "https://robomart.example.com/p/"},
	{"ServoSupply", "https://servosupply.example.com/catalog/"},
	{"PartsBay", "https://partsbay.example.com/listing/"},
}

// SimulatedSource produces deterministic pseudo-market quotes. The same
// component always yields the same quotes, which keeps demo environments
// and tests stable without a live marketplace account.
type SimulatedSource struct{}

func NewSimulatedSource() *SimulatedSource {
	return &SimulatedSource{}
}

func (s *SimulatedSource) FetchQuotes(_ context.Context, component *models.Component) ([]models.PriceQuote, error) {
	if component == nil {
		return nil, fmt.Errorf("component is required")
	}

	rng := rand.New(rand.NewSource(seedFor(component)))

	multiplier, ok := categoryMultipliers[component.Category]
	if !ok {
		multiplier = 1.0
	}
	base := (25.0 + rng.Float64()*475.0) * multiplier

	quotes := make([]models.PriceQuote, 0, len(vendors))
	for _, vendor := range vendors {
		// Each vendor deviates from the base price by 15 to 30 percent
		// in either direction.
		magnitude := 0.15 + rng.Float64()*0.15
		if rng.Intn(2) == 0 {
			magnitude = -magnitude
		}
		price := decimal.NewFromFloat(base * (1 + magnitude)).Round(2)

		quotes = append(quotes, models.PriceQuote{
			Source:   vendor.name,
			Price:    price,
			Currency: "USD",
			InStock:  rng.Float64() < 0.8,
			URL:      vendor.host + url.PathEscape(strings.ToLower(strings.ReplaceAll(component.Name, " ", "-"))),
		})
	}

	return quotes, nil
}

// seedFor hashes name|type|category with FNV-1a so quotes are stable per
// component identity, not per database row.
func seedFor(component *models.Component) int64 {
	h := fnv.New64a()
	h.Write([]byte(component.Name))
	h.Write([]byte("|"))
	h.Write([]byte(component.Type))
	h.Write([]byte("|"))
	h.Write([]byte(string(component.Category)))
	return int64(h.Sum64())
}
