package inventory

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/blazinaj/roboconfig-sub000/internal/repository"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

// LedgerService owns the append-only transaction log. Every quantity change
// goes through it: transaction row and item update commit as one unit.
type LedgerService struct {
	r *repository.Repository
}

func NewLedgerService(r *repository.Repository) *LedgerService {
	return &LedgerService{r: r}
}

func (s *LedgerService) ApplyTransaction(req TransactionRequest) (*models.InventoryTransaction, error) {
	transactionType, err := metadata.NewTransactionType(req.Type)
	if err != nil {
		return nil, err
	}

	if err := validateQuantity(transactionType, req.Quantity); err != nil {
		return nil, err
	}

	var transaction *models.InventoryTransaction
	err = repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		transaction, err = ApplyTx(tx, req.InventoryItemID, transactionType, req.Quantity, req.Notes, req.ReferenceID, req.ReferenceType)
		return err
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// LedgerStore is the persistence seam for ledger entries. All methods run
// against the same database transaction so an entry and its quantity change
// commit or roll back together.
type LedgerStore interface {
	AddQuantity(itemID, quantity int) error
	SetQuantity(itemID, quantity int) error
	DecrementIfAvailable(itemID, quantity int) (bool, error)
	InsufficientInventory(itemID, requested int) error
	InsertEntry(itemID int, transactionType metadata.TransactionType, quantity int, notes *string, referenceID *int, referenceType *string) (*models.InventoryTransaction, error)
}

// ApplyTx applies one ledger entry inside an existing database transaction.
// Exported so multi-item operations (machine allocation, order receiving)
// can post entries under a single commit.
func ApplyTx(tx *goqu.TxDatabase, itemID int, transactionType metadata.TransactionType, quantity int, notes *string, referenceID *int, referenceType *string) (*models.InventoryTransaction, error) {
	return ApplyToStore(NewTxLedgerStore(tx), itemID, transactionType, quantity, notes, referenceID, referenceType)
}

// ApplyToStore applies one ledger entry against a store. Receipt adds the
// quantity, issue and transfer subtract it, adjustment sets the absolute
// value. Issue and transfer only record an entry when the decrement was
// accepted, so a failed decrement leaves both the quantity and the log
// untouched.
func ApplyToStore(store LedgerStore, itemID int, transactionType metadata.TransactionType, quantity int, notes *string, referenceID *int, referenceType *string) (*models.InventoryTransaction, error) {
	switch transactionType {
	case metadata.TransactionReceipt:
		if err := store.AddQuantity(itemID, quantity); err != nil {
			return nil, err
		}
	case metadata.TransactionIssue, metadata.TransactionTransfer:
		applied, err := store.DecrementIfAvailable(itemID, quantity)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, store.InsufficientInventory(itemID, quantity)
		}
	case metadata.TransactionAdjustment:
		if err := store.SetQuantity(itemID, quantity); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported transaction type: %s", transactionType)
	}

	return store.InsertEntry(itemID, transactionType, quantity, notes, referenceID, referenceType)
}

// NewTxLedgerStore binds a LedgerStore to an open database transaction. The
// decrement is a single conditional statement so concurrent issues cannot
// race past the quantity check.
func NewTxLedgerStore(tx *goqu.TxDatabase) LedgerStore {
	return &txLedgerStore{tx: tx}
}

type txLedgerStore struct {
	tx *goqu.TxDatabase
}

func (s *txLedgerStore) AddQuantity(itemID, quantity int) error {
	return execQuantityUpdate(s.tx, itemID, goqu.L("quantity + ?", quantity), nil)
}

func (s *txLedgerStore) SetQuantity(itemID, quantity int) error {
	return execQuantityUpdate(s.tx, itemID, goqu.V(quantity), nil)
}

func (s *txLedgerStore) DecrementIfAvailable(itemID, quantity int) (bool, error) {
	return execConditionalDecrement(s.tx, itemID, quantity)
}

func (s *txLedgerStore) InsufficientInventory(itemID, requested int) error {
	return insufficientInventoryError(s.tx, itemID, requested)
}

func (s *txLedgerStore) InsertEntry(itemID int, transactionType metadata.TransactionType, quantity int, notes *string, referenceID *int, referenceType *string) (*models.InventoryTransaction, error) {
	return insertTransactionRow(s.tx, itemID, transactionType, quantity, notes, referenceID, referenceType)
}

func validateQuantity(transactionType metadata.TransactionType, quantity int) error {
	if transactionType == metadata.TransactionAdjustment {
		if quantity < 0 {
			return fmt.Errorf("adjustment quantity must not be negative, got %d", quantity)
		}
		return nil
	}
	if quantity < 1 {
		return fmt.Errorf("%s quantity must be at least 1, got %d", transactionType, quantity)
	}
	return nil
}

func execQuantityUpdate(tx *goqu.TxDatabase, itemID int, quantityExpression interface{}, extraCondition goqu.Expression) error {
	query := tx.Update("inventory_items").
		Set(goqu.Record{
			"quantity":   quantityExpression,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": itemID})
	if extraCondition != nil {
		query = query.Where(extraCondition)
	}

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update item quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("inventory item %d not found", itemID)
	}

	return nil
}

// execConditionalDecrement subtracts quantity only when enough stock is on
// hand. Returns false when the guard rejected the update.
func execConditionalDecrement(tx *goqu.TxDatabase, itemID int, quantity int) (bool, error) {
	query := tx.Update("inventory_items").
		Set(goqu.Record{
			"quantity":   goqu.L("quantity - ?", quantity),
			"updated_at": goqu.L("NOW()"),
		}).
		Where(
			goqu.Ex{"id": itemID},
			goqu.L("quantity >= ?", quantity),
		)

	result, err := query.Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to decrement item quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func insufficientInventoryError(tx *goqu.TxDatabase, itemID int, requested int) error {
	var row struct {
		Quantity      int    `db:"quantity"`
		ComponentName string `db:"component_name"`
	}

	query := tx.Select(
		goqu.I("i.quantity").As("quantity"),
		goqu.I("c.name").As("component_name"),
	).
		From(goqu.T("inventory_items").As("i")).
		LeftJoin(
			goqu.T("components").As("c"),
			goqu.On(goqu.Ex{"i.component_id": goqu.I("c.id")}),
		).
		Where(goqu.Ex{"i.id": itemID})

	found, err := query.Executor().ScanStruct(&row)
	if err != nil {
		return fmt.Errorf("unable to inspect inventory item %d: %w", itemID, err)
	}
	if !found {
		return fmt.Errorf("inventory item %d not found", itemID)
	}

	return &custom_error.InsufficientInventoryError{
		ComponentName: row.ComponentName,
		Requested:     requested,
		Available:     row.Quantity,
	}
}

func insertTransactionRow(tx *goqu.TxDatabase, itemID int, transactionType metadata.TransactionType, quantity int, notes *string, referenceID *int, referenceType *string) (*models.InventoryTransaction, error) {
	transaction := models.InventoryTransaction{
		InventoryItemID: itemID,
		Type:            transactionType,
		Quantity:        quantity,
		Notes:           notes,
		ReferenceID:     referenceID,
		ReferenceType:   referenceType,
	}

	query := tx.Insert("inventory_transactions").
		Rows(goqu.Record{
			"inventory_item_id": itemID,
			"transaction_type":  transactionType.String(),
			"quantity":          quantity,
			"notes":             notes,
			"reference_id":      referenceID,
			"reference_type":    referenceType,
		}).
		Returning("id", "created_at")

	if _, err := query.Executor().ScanStruct(&transaction); err != nil {
		return nil, fmt.Errorf("failed to insert inventory transaction: %w", err)
	}

	return &transaction, nil
}
