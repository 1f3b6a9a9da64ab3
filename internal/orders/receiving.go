package orders

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/blazinaj/roboconfig-sub000/internal/inventory"
	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type ReceivingService struct {
	r  *repository.Repository
	or *OrderRepository
}

func NewReceivingService(r *repository.Repository, or *OrderRepository) *ReceivingService {
	return &ReceivingService{r: r, or: or}
}

// DeriveStatus computes the order status implied by the lines. Received
// when every line is fully covered, partial when anything arrived, and the
// current status otherwise; an order never regresses out of partial or
// received automatically.
func DeriveStatus(current metadata.OrderStatus, items []models.PurchaseOrderItem) metadata.OrderStatus {
	if len(items) == 0 || current == metadata.OrderReceived {
		return current
	}

	allReceived := true
	anyReceived := false
	for _, item := range items {
		if item.ReceivedQuantity > 0 {
			anyReceived = true
		}
		if !item.FullyReceived() {
			allReceived = false
		}
	}

	switch {
	case allReceived:
		return metadata.OrderReceived
	case anyReceived:
		return metadata.OrderPartial
	default:
		return current
	}
}

// ReceiveItems accumulates arrived quantities onto the order's lines,
// re-derives the order status and posts receipt transactions for tracked
// components, all under one commit. The first transition into a received
// state stamps the actual delivery date if unset.
func (s *ReceivingService) ReceiveItems(orderID int, req ReceiveRequest) (*models.PurchaseOrder, error) {
	order, err := s.or.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == metadata.OrderCancelled {
		return nil, fmt.Errorf("cannot receive against a cancelled order")
	}

	lineIndex := make(map[int]models.PurchaseOrderItem, len(order.Items))
	for _, item := range order.Items {
		lineIndex[item.ID] = item
	}
	for _, line := range req.Lines {
		if _, ok := lineIndex[line.ItemID]; !ok {
			return nil, fmt.Errorf("line %d does not belong to order %d", line.ItemID, orderID)
		}
	}

	referenceType := "purchase_order"
	notes := fmt.Sprintf("Receipt for order %s", order.OrderNumber)

	err = repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		for _, line := range req.Lines {
			if _, err := tx.Update("purchase_order_items").
				Set(goqu.Record{"received_quantity": goqu.L("received_quantity + ?", line.Quantity)}).
				Where(goqu.Ex{"id": line.ItemID}).
				Executor().Exec(); err != nil {
				return fmt.Errorf("failed to update received quantity: %w", err)
			}

			// Tracked components get a ledger receipt; untracked ones only
			// advance the order line.
			item := lineIndex[line.ItemID]
			inventoryItemID, tracked, err := lookupTrackedItem(tx, item.ComponentID)
			if err != nil {
				return err
			}
			if tracked {
				if _, err := inventory.ApplyTx(
					tx, inventoryItemID, metadata.TransactionReceipt, line.Quantity,
					&notes, &orderID, &referenceType,
				); err != nil {
					return err
				}
			}
		}

		items, err := fetchOrderItemsTx(tx, orderID)
		if err != nil {
			return err
		}

		newStatus := DeriveStatus(order.Status, items)
		if newStatus == order.Status {
			return nil
		}

		updates := goqu.Record{
			"status":     string(newStatus),
			"updated_at": goqu.L("NOW()"),
		}
		if order.ActualDelivery == nil {
			updates["actual_delivery"] = time.Now()
		}

		if _, err := tx.Update("purchase_orders").
			Set(updates).
			Where(goqu.Ex{"id": orderID}).
			Executor().Exec(); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.or.GetOrder(orderID)
}

func fetchOrderItemsTx(tx *goqu.TxDatabase, orderID int) ([]models.PurchaseOrderItem, error) {
	var items []models.PurchaseOrderItem
	query := tx.Select("id", "purchase_order_id", "component_id", "quantity", "received_quantity", "unit_price").
		From("purchase_order_items").
		Where(goqu.Ex{"purchase_order_id": orderID})

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select purchase order items: %w", err)
	}

	return items, nil
}

func lookupTrackedItem(tx *goqu.TxDatabase, componentID int) (int, bool, error) {
	var itemID int
	query := tx.Select("id").
		From("inventory_items").
		Where(goqu.Ex{"component_id": componentID})

	found, err := query.Executor().ScanVal(&itemID)
	if err != nil {
		return 0, false, fmt.Errorf("unable to resolve inventory item for component %d: %w", componentID, err)
	}

	return itemID, found, nil
}
