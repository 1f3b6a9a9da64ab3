package orders

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type OrderRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *OrderRepository {
	return &OrderRepository{repository: r}
}

func (r *OrderRepository) GetOrder(id int) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	query := r.getOrderQuery().Where(goqu.Ex{"po.id": id})

	found, err := query.Executor().ScanStruct(&order)
	if err != nil {
		return nil, fmt.Errorf("unable to select purchase order from database: %s", err.Error())
	}
	if !found {
		return nil, fmt.Errorf("purchase order %d not found", id)
	}

	items, err := r.GetOrderItems(id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *OrderRepository) GetOrdersBy(conditions repository.QueryBuilder) (*[]models.PurchaseOrder, error) {
	aliases := map[string]string{
		"organization_id": "po.organization_id",
		"supplier_id":     "po.supplier_id",
		"status":          "po.status",
	}

	var ordersList []models.PurchaseOrder
	query := r.getOrderQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("po.id").Asc())

	if err := query.Executor().ScanStructs(&ordersList); err != nil {
		return nil, fmt.Errorf("unable to select purchase orders from database: %s", err.Error())
	}

	return &ordersList, nil
}

func (r *OrderRepository) GetOrderItems(orderID int) ([]models.PurchaseOrderItem, error) {
	var items []models.PurchaseOrderItem
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("poi.id").As("id"),
			goqu.I("poi.purchase_order_id").As("purchase_order_id"),
			goqu.I("poi.component_id").As("component_id"),
			goqu.I("c.name").As("component_name"),
			goqu.I("poi.quantity").As("quantity"),
			goqu.I("poi.received_quantity").As("received_quantity"),
			goqu.I("poi.unit_price").As("unit_price"),
		).
		From(goqu.T("purchase_order_items").As("poi")).
		LeftJoin(
			goqu.T("components").As("c"),
			goqu.On(goqu.Ex{"poi.component_id": goqu.I("c.id")}),
		).
		Where(goqu.Ex{"poi.purchase_order_id": orderID}).
		Order(goqu.I("poi.id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select purchase order items: %w", err)
	}

	return items, nil
}

func (r *OrderRepository) PersistOrder(req OrderRequest) (*models.PurchaseOrder, error) {
	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	var orderID int
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		record := goqu.Record{
			"organization_id": req.OrganizationID,
			"supplier_id":     req.SupplierID,
			"order_number":    req.OrderNumber,
			"status":          string(metadata.OrderPending),
			"total":           total,
		}
		if req.ExpectedDelivery != nil {
			record["expected_delivery"] = *req.ExpectedDelivery
		}
		if req.Notes != nil {
			record["notes"] = *req.Notes
		}

		query := tx.Insert("purchase_orders").
			Rows(record).
			Returning("id")

		if _, err := query.Executor().ScanVal(&orderID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return custom_error.WrapDBError("Duplicate order number", string(pqErr.Code))
			}
			return fmt.Errorf("failed to insert purchase order record: %w", err)
		}

		records := make([]interface{}, len(req.Items))
		for i, item := range req.Items {
			records[i] = goqu.Record{
				"purchase_order_id": orderID,
				"component_id":      item.ComponentID,
				"quantity":          item.Quantity,
				"unit_price":        item.UnitPrice,
			}
		}

		if _, err := tx.Insert("purchase_order_items").Rows(records...).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to insert purchase order items: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetOrder(orderID)
}

func (r *OrderRepository) UpdateStatus(orderID int, status metadata.OrderStatus) error {
	result, err := r.repository.GoquDBWrapper.
		Update("purchase_orders").
		Set(goqu.Record{
			"status":     string(status),
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": orderID}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("purchase order %d not found", orderID)
	}

	return nil
}

func (r *OrderRepository) DeleteOrder(id int) error {
	query := r.repository.GoquDBWrapper.
		Delete("purchase_orders").
		Where(goqu.Ex{"id": id, "status": string(metadata.OrderDraft)})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("purchase order %d not found or not in draft", id)
	}

	return nil
}

func (r *OrderRepository) getOrderQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("po.id").As("id"),
			goqu.I("po.organization_id").As("organization_id"),
			goqu.I("po.supplier_id").As("supplier_id"),
			goqu.I("s.name").As("supplier_name"),
			goqu.I("po.order_number").As("order_number"),
			goqu.I("po.status").As("status"),
			goqu.I("po.expected_delivery").As("expected_delivery"),
			goqu.I("po.actual_delivery").As("actual_delivery"),
			goqu.I("po.notes").As("notes"),
			goqu.I("po.total").As("total"),
			goqu.I("po.created_at").As("created_at"),
			goqu.I("po.updated_at").As("updated_at"),
		).
		From(goqu.T("purchase_orders").As("po")).
		LeftJoin(
			goqu.T("suppliers").As("s"),
			goqu.On(goqu.Ex{"po.supplier_id": goqu.I("s.id")}),
		)
}
