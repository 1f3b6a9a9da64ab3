package inventory

import "github.com/shopspring/decimal"

type InventoryItemRequest struct {
	ComponentID     int              `json:"component_id" binding:"required"`
	OrganizationID  int              `json:"organization_id" binding:"required"`
	Quantity        int              `json:"quantity" binding:"gte=0"`
	MinimumQuantity int              `json:"minimum_quantity" binding:"gte=0"`
	ReorderQuantity int              `json:"reorder_quantity" binding:"gte=0"`
	Location        *string          `json:"location"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	SKU             *string          `json:"sku"`
	Barcode         *string          `json:"barcode"`
}

type PatchInventoryItemRequest struct {
	ID              int              `uri:"id" json:"-" binding:"required"`
	MinimumQuantity *int             `json:"minimum_quantity"`
	ReorderQuantity *int             `json:"reorder_quantity"`
	Location        *string          `json:"location"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	SKU             *string          `json:"sku"`
	Barcode         *string          `json:"barcode"`
}

// TransactionRequest creates one ledger entry. Quantity is a delta for
// receipt/issue/transfer and the absolute new value for adjustment.
type TransactionRequest struct {
	InventoryItemID int     `json:"inventory_item_id" binding:"required"`
	Type            string  `json:"transaction_type" binding:"required"`
	Quantity        int     `json:"quantity"`
	Notes           *string `json:"notes"`
	ReferenceID     *int    `json:"reference_id"`
	ReferenceType   *string `json:"reference_type"`
}
