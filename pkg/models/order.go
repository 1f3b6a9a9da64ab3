package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
)

type PurchaseOrder struct {
	ID               int                  `json:"id" db:"id"`
	OrganizationID   int                  `json:"organization_id" db:"organization_id"`
	SupplierID       int                  `json:"supplier_id" db:"supplier_id"`
	SupplierName     string               `json:"supplier_name" db:"supplier_name"`
	OrderNumber      string               `json:"order_number" db:"order_number"`
	Status           metadata.OrderStatus `json:"status" db:"status"`
	ExpectedDelivery *time.Time           `json:"expected_delivery,omitempty" db:"expected_delivery"`
	ActualDelivery   *time.Time           `json:"actual_delivery,omitempty" db:"actual_delivery"`
	Notes            *string              `json:"notes,omitempty" db:"notes"`
	Total            decimal.Decimal      `json:"total" db:"total"`
	Items            []PurchaseOrderItem  `json:"items" db:"-"`
	CreatedAt        time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at" db:"updated_at"`
}

type PurchaseOrderItem struct {
	ID               int             `json:"id" db:"id"`
	PurchaseOrderID  int             `json:"purchase_order_id" db:"purchase_order_id"`
	ComponentID      int             `json:"component_id" db:"component_id"`
	ComponentName    string          `json:"component_name" db:"component_name"`
	Quantity         int             `json:"quantity" db:"quantity"`
	ReceivedQuantity int             `json:"received_quantity" db:"received_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// FullyReceived reports whether the line's received quantity covers the
// ordered quantity.
func (i *PurchaseOrderItem) FullyReceived() bool {
	return i.ReceivedQuantity >= i.Quantity
}

func (o *PurchaseOrder) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ID,
		ResourceType: "purchase_order",
	}
}
