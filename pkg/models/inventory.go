package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
)

type InventoryItem struct {
	ID              int                  `json:"id" db:"id"`
	ComponentID     int                  `json:"component_id" db:"component_id"`
	OrganizationID  int                  `json:"organization_id" db:"organization_id"`
	Quantity        int                  `json:"quantity" db:"quantity"`
	MinimumQuantity int                  `json:"minimum_quantity" db:"minimum_quantity"`
	ReorderQuantity int                  `json:"reorder_quantity" db:"reorder_quantity"`
	Location        *string              `json:"location,omitempty" db:"location"`
	UnitCost        *decimal.Decimal     `json:"unit_cost,omitempty" db:"unit_cost"`
	SKU             *string              `json:"sku,omitempty" db:"sku"`
	Barcode         *string              `json:"barcode,omitempty" db:"barcode"`
	Status          metadata.StockStatus `json:"status" db:"-"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" db:"updated_at"`
}

// StockStatus is recomputed from quantities on every read; the Status field
// only carries the derived value out to JSON.
func (i *InventoryItem) StockStatus() metadata.StockStatus {
	return metadata.ClassifyStock(i.Quantity, i.MinimumQuantity)
}

type InventoryTransaction struct {
	ID              int                      `json:"id" db:"id"`
	InventoryItemID int                      `json:"inventory_item_id" db:"inventory_item_id"`
	Type            metadata.TransactionType `json:"transaction_type" db:"transaction_type"`
	Quantity        int                      `json:"quantity" db:"quantity"`
	Notes           *string                  `json:"notes,omitempty" db:"notes"`
	ReferenceID     *int                     `json:"reference_id,omitempty" db:"reference_id"`
	ReferenceType   *string                  `json:"reference_type,omitempty" db:"reference_type"`
	CreatedAt       time.Time                `json:"created_at" db:"created_at"`
}

func (i *InventoryItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "inventory_item",
	}
}

func (t *InventoryTransaction) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   t.ID,
		ResourceType: "inventory_transaction",
	}
}
