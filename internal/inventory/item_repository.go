package inventory

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type ItemRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ItemRepository {
	return &ItemRepository{repository: r}
}

func (r *ItemRepository) PersistInventoryItem(req InventoryItemRequest) (*models.InventoryItem, error) {
	var itemID int

	record := goqu.Record{
		"component_id":     req.ComponentID,
		"organization_id":  req.OrganizationID,
		"quantity":         req.Quantity,
		"minimum_quantity": req.MinimumQuantity,
		"reorder_quantity": req.ReorderQuantity,
	}
	if req.Location != nil {
		record["location"] = *req.Location
	}
	if req.UnitCost != nil {
		record["unit_cost"] = *req.UnitCost
	}
	if req.SKU != nil {
		record["sku"] = *req.SKU
	}
	if req.Barcode != nil {
		record["barcode"] = *req.Barcode
	}

	query := r.repository.GoquDBWrapper.Insert("inventory_items").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&itemID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Component already tracked in inventory", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert inventory item record: %w", err)
	}

	return r.GetInventoryItem(itemID)
}

func (r *ItemRepository) GetInventoryItem(id int) (*models.InventoryItem, error) {
	var item models.InventoryItem
	query := r.getItemQuery().Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to select inventory item from database: %s", err.Error())
	}
	if !found {
		return nil, fmt.Errorf("inventory item not found")
	}

	item.Status = item.StockStatus()

	return &item, nil
}

func (r *ItemRepository) GetInventoryItemsBy(conditions repository.QueryBuilder) (*[]models.InventoryItem, error) {
	aliases := map[string]string{
		"organization_id": "organization_id",
		"component_id":    "component_id",
	}

	var items []models.InventoryItem
	query := r.getItemQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select inventory items from database: %s", err.Error())
	}

	for i := range items {
		items[i].Status = items[i].StockStatus()
	}

	return &items, nil
}

// GetLowStockItems lists items at or below their minimum quantity,
// including items fully out of stock.
func (r *ItemRepository) GetLowStockItems(organizationID int) (*[]models.InventoryItem, error) {
	var items []models.InventoryItem
	query := r.getItemQuery().
		Where(
			goqu.Ex{"organization_id": organizationID},
			goqu.L("quantity <= minimum_quantity"),
		).
		Order(goqu.I("quantity").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select low stock items: %s", err.Error())
	}

	for i := range items {
		items[i].Status = items[i].StockStatus()
	}

	return &items, nil
}

func (r *ItemRepository) UpdateInventoryItem(req *PatchInventoryItemRequest) (*models.InventoryItem, error) {
	updates := buildItemUpdateFields(req)
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	updates["updated_at"] = goqu.L("NOW()")

	query := r.repository.GoquDBWrapper.
		Update("inventory_items").
		Set(updates).
		Where(goqu.Ex{"id": req.ID})

	result, err := query.Executor().Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("no rows updated")
	}

	return r.GetInventoryItem(req.ID)
}

func (r *ItemRepository) DeleteInventoryItem(id int) error {
	query := r.repository.GoquDBWrapper.
		Delete("inventory_items").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("inventory item %d not found", id)
	}

	return nil
}

func (r *ItemRepository) GetTransactions(inventoryItemID int) ([]models.InventoryTransaction, error) {
	var transactions []models.InventoryTransaction
	query := r.repository.GoquDBWrapper.
		Select("id", "inventory_item_id", "transaction_type", "quantity", "notes", "reference_id", "reference_type", "created_at").
		From("inventory_transactions").
		Where(goqu.Ex{"inventory_item_id": inventoryItemID}).
		Order(goqu.I("created_at").Desc())

	if err := query.Executor().ScanStructs(&transactions); err != nil {
		return nil, fmt.Errorf("unable to select inventory transactions: %w", err)
	}

	return transactions, nil
}

func (r *ItemRepository) getItemQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			"id", "component_id", "organization_id", "quantity", "minimum_quantity",
			"reorder_quantity", "location", "unit_cost", "sku", "barcode",
			"created_at", "updated_at",
		).
		From("inventory_items")
}

func buildItemUpdateFields(req *PatchInventoryItemRequest) goqu.Record {
	updates := goqu.Record{}

	if req.MinimumQuantity != nil {
		updates["minimum_quantity"] = *req.MinimumQuantity
	}
	if req.ReorderQuantity != nil {
		updates["reorder_quantity"] = *req.ReorderQuantity
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.UnitCost != nil {
		updates["unit_cost"] = *req.UnitCost
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Barcode != nil {
		updates["barcode"] = *req.Barcode
	}

	return updates
}
