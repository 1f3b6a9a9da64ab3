package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ComponentID int             `json:"component_id" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,gte=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type OrderRequest struct {
	OrganizationID   int                `json:"organization_id" binding:"required"`
	SupplierID       int                `json:"supplier_id" binding:"required"`
	OrderNumber      string             `json:"order_number" binding:"required"`
	ExpectedDelivery *time.Time         `json:"expected_delivery"`
	Notes            *string            `json:"notes"`
	Items            []OrderItemRequest `json:"items" binding:"required,min=1"`
}

// ReceiveLineRequest adds newly arrived units to a line; quantities
// accumulate across calls.
type ReceiveLineRequest struct {
	ItemID   int `json:"item_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

type ReceiveRequest struct {
	Lines []ReceiveLineRequest `json:"lines" binding:"required,min=1"`
}
