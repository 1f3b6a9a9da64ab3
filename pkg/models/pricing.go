package models

import "github.com/shopspring/decimal"

// PriceQuote is one vendor's quote for a catalog component.
type PriceQuote struct {
	Source   string          `json:"source"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	InStock  bool            `json:"in_stock"`
	URL      string          `json:"url"`
}

// MachineEstimate sums the cheapest quote per component over a machine's
// parts list.
type MachineEstimate struct {
	MachineID int             `json:"machine_id"`
	Currency  string          `json:"currency"`
	Total     decimal.Decimal `json:"total"`
	Lines     []EstimateLine  `json:"lines"`
	Missing   []int           `json:"missing_component_ids,omitempty"`
}

type EstimateLine struct {
	ComponentID   int             `json:"component_id"`
	ComponentName string          `json:"component_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Source        string          `json:"source"`
}
