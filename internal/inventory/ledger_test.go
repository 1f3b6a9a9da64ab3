package inventory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type fakeLedgerStore struct {
	quantities map[int]int
	entries    []models.InventoryTransaction
	nextID     int
}

func newFakeLedgerStore(quantities map[int]int) *fakeLedgerStore {
	return &fakeLedgerStore{quantities: quantities}
}

func (s *fakeLedgerStore) AddQuantity(itemID, quantity int) error {
	if _, ok := s.quantities[itemID]; !ok {
		return fmt.Errorf("inventory item %d not found", itemID)
	}
	s.quantities[itemID] += quantity
	return nil
}

func (s *fakeLedgerStore) SetQuantity(itemID, quantity int) error {
	if _, ok := s.quantities[itemID]; !ok {
		return fmt.Errorf("inventory item %d not found", itemID)
	}
	s.quantities[itemID] = quantity
	return nil
}

func (s *fakeLedgerStore) DecrementIfAvailable(itemID, quantity int) (bool, error) {
	current, ok := s.quantities[itemID]
	if !ok || current < quantity {
		return false, nil
	}
	s.quantities[itemID] = current - quantity
	return true, nil
}

func (s *fakeLedgerStore) InsufficientInventory(itemID, requested int) error {
	return &custom_error.InsufficientInventoryError{
		ComponentName: fmt.Sprintf("item %d", itemID),
		Requested:     requested,
		Available:     s.quantities[itemID],
	}
}

func (s *fakeLedgerStore) InsertEntry(itemID int, transactionType metadata.TransactionType, quantity int, notes *string, referenceID *int, referenceType *string) (*models.InventoryTransaction, error) {
	s.nextID++
	entry := models.InventoryTransaction{
		ID:              s.nextID,
		InventoryItemID: itemID,
		Type:            transactionType,
		Quantity:        quantity,
		Notes:           notes,
		ReferenceID:     referenceID,
		ReferenceType:   referenceType,
	}
	s.entries = append(s.entries, entry)
	return &entry, nil
}

func TestApplyReceiptThenIssue(t *testing.T) {
	store := newFakeLedgerStore(map[int]int{1: 10})

	receipt, err := ApplyToStore(store, 1, metadata.TransactionReceipt, 5, nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 15, store.quantities[1])
	assert.Equal(t, metadata.TransactionReceipt, receipt.Type)

	issue, err := ApplyToStore(store, 1, metadata.TransactionIssue, 3, nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 12, store.quantities[1])
	assert.Equal(t, metadata.TransactionIssue, issue.Type)

	assert.Len(t, store.entries, 2)
}

func TestApplyIssueExceedingStock(t *testing.T) {
	store := newFakeLedgerStore(map[int]int{1: 2})

	_, err := ApplyToStore(store, 1, metadata.TransactionIssue, 5, nil, nil, nil)

	var insufficient *custom_error.InsufficientInventoryError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	// The failed issue must leave the quantity and the log untouched.
	assert.Equal(t, 2, store.quantities[1])
	assert.Empty(t, store.entries)
}

func TestApplyAdjustmentSetsAbsoluteQuantity(t *testing.T) {
	tests := []struct {
		name  string
		prior int
	}{
		{"from empty", 0},
		{"from higher stock", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeLedgerStore(map[int]int{1: tt.prior})

			transaction, err := ApplyToStore(store, 1, metadata.TransactionAdjustment, 5, nil, nil, nil)
			assert.NoError(t, err)
			assert.Equal(t, 5, store.quantities[1])
			assert.Equal(t, metadata.TransactionAdjustment, transaction.Type)
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name            string
		transactionType metadata.TransactionType
		quantity        int
		wantErr         bool
	}{
		{"receipt positive", metadata.TransactionReceipt, 5, false},
		{"receipt zero", metadata.TransactionReceipt, 0, true},
		{"issue positive", metadata.TransactionIssue, 1, false},
		{"issue zero", metadata.TransactionIssue, 0, true},
		{"issue negative", metadata.TransactionIssue, -3, true},
		{"transfer zero", metadata.TransactionTransfer, 0, true},
		{"adjustment zero sets stock to empty", metadata.TransactionAdjustment, 0, false},
		{"adjustment positive", metadata.TransactionAdjustment, 42, false},
		{"adjustment negative", metadata.TransactionAdjustment, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuantity(tt.transactionType, tt.quantity)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInsufficientInventoryErrorMessage(t *testing.T) {
	err := &custom_error.InsufficientInventoryError{
		ComponentName: "NEMA 17 Stepper Motor",
		Requested:     10,
		Available:     4,
	}

	assert.Contains(t, err.Error(), "NEMA 17 Stepper Motor")
	assert.Contains(t, err.Error(), "10")
	assert.Contains(t, err.Error(), "4")
}
