package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

func testComponent(name string, category metadata.Category) *models.Component {
	return &models.Component{
		ID:       1,
		Name:     name,
		Category: category,
		Type:     "test_type",
	}
}

func TestSimulatedQuotesAreDeterministic(t *testing.T) {
	source := NewSimulatedSource()
	component := testComponent("NEMA 17 Stepper Motor", metadata.CategoryDrive)

	first, err := source.FetchQuotes(context.Background(), component)
	assert.NoError(t, err)
	second, err := source.FetchQuotes(context.Background(), component)
	assert.NoError(t, err)

	assert.Equal(t, first, second, "same component identity must produce identical quotes")
}

func TestSimulatedQuotesVaryByIdentity(t *testing.T) {
	source := NewSimulatedSource()

	motor, err := source.FetchQuotes(context.Background(), testComponent("NEMA 17 Stepper Motor", metadata.CategoryDrive))
	assert.NoError(t, err)
	lidar, err := source.FetchQuotes(context.Background(), testComponent("RPLidar A1", metadata.CategorySensors))
	assert.NoError(t, err)

	assert.NotEqual(t, motor[0].Price, lidar[0].Price)
}

func TestSimulatedQuoteShape(t *testing.T) {
	source := NewSimulatedSource()

	quotes, err := source.FetchQuotes(context.Background(), testComponent("LiPo 4S 5000mAh", metadata.CategoryPower))
	assert.NoError(t, err)
	assert.Len(t, quotes, len(vendors))

	for _, quote := range quotes {
		assert.NotEmpty(t, quote.Source)
		assert.Equal(t, "USD", quote.Currency)
		assert.True(t, quote.Price.GreaterThan(decimal.Zero), "price must be positive")
		assert.Contains(t, quote.URL, "lipo-4s-5000mah")
	}
}

func TestSimulatedNilComponent(t *testing.T) {
	source := NewSimulatedSource()

	_, err := source.FetchQuotes(context.Background(), nil)
	assert.Error(t, err)
}

func TestCheapestQuotePrefersInStock(t *testing.T) {
	quotes := []models.PriceQuote{
		{Source: "A", Price: decimal.NewFromInt(10), InStock: false},
		{Source: "B", Price: decimal.NewFromInt(30), InStock: true},
		{Source: "C", Price: decimal.NewFromInt(20), InStock: true},
	}

	best, ok := cheapestQuote(quotes)
	assert.True(t, ok)
	assert.Equal(t, "C", best.Source, "cheapest in-stock offer wins over a cheaper out-of-stock one")
}

func TestCheapestQuoteFallsBackWhenNothingInStock(t *testing.T) {
	quotes := []models.PriceQuote{
		{Source: "A", Price: decimal.NewFromInt(10), InStock: false},
		{Source: "B", Price: decimal.NewFromInt(5), InStock: false},
	}

	best, ok := cheapestQuote(quotes)
	assert.True(t, ok)
	assert.Equal(t, "B", best.Source)
}

func TestCheapestQuoteEmpty(t *testing.T) {
	_, ok := cheapestQuote(nil)
	assert.False(t, ok)
}
