package metadata

import "fmt"

// StockStatus is derived from quantity vs minimum quantity on every read,
// never persisted.
type StockStatus string

const (
	StockOutOfStock StockStatus = "out_of_stock"
	StockLow        StockStatus = "low_stock"
	StockInStock    StockStatus = "in_stock"
)

// ClassifyStock derives the stock status for an inventory item.
func ClassifyStock(quantity, minimumQuantity int) StockStatus {
	switch {
	case quantity == 0:
		return StockOutOfStock
	case quantity <= minimumQuantity:
		return StockLow
	default:
		return StockInStock
	}
}

type MachineStatus string

const (
	MachineActive      MachineStatus = "active"
	MachineInactive    MachineStatus = "inactive"
	MachineMaintenance MachineStatus = "maintenance"
	MachineError       MachineStatus = "error"
)

func NewMachineStatus(value string) (MachineStatus, error) {
	status := MachineStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid machine status: %s", value)
	}
	return status, nil
}

func (s MachineStatus) isValid() bool {
	switch s {
	case MachineActive, MachineInactive, MachineMaintenance, MachineError:
		return true
	default:
		return false
	}
}

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderShipped   OrderStatus = "shipped"
	OrderPartial   OrderStatus = "partial"
	OrderReceived  OrderStatus = "received"
	OrderCancelled OrderStatus = "cancelled"
)

func NewOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid order status: %s", value)
	}
	return status, nil
}

func (s OrderStatus) isValid() bool {
	switch s {
	case OrderDraft, OrderPending, OrderApproved, OrderShipped, OrderPartial, OrderReceived, OrderCancelled:
		return true
	default:
		return false
	}
}
