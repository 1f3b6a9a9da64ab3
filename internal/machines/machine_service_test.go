package machines

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blazinaj/roboconfig-sub000/internal/inventory"
	custom_error "github.com/blazinaj/roboconfig-sub000/pkg/errors"
	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

type allocationStore struct {
	quantities map[int]int
	entries    []models.InventoryTransaction
}

func (s *allocationStore) AddQuantity(itemID, quantity int) error {
	s.quantities[itemID] += quantity
	return nil
}

func (s *allocationStore) SetQuantity(itemID, quantity int) error {
	s.quantities[itemID] = quantity
	return nil
}

func (s *allocationStore) DecrementIfAvailable(itemID, quantity int) (bool, error) {
	if s.quantities[itemID] < quantity {
		return false, nil
	}
	s.quantities[itemID] -= quantity
	return true, nil
}

func (s *allocationStore) InsufficientInventory(itemID, requested int) error {
	return &custom_error.InsufficientInventoryError{
		ComponentName: fmt.Sprintf("item %d", itemID),
		Requested:     requested,
		Available:     s.quantities[itemID],
	}
}

func (s *allocationStore) InsertEntry(itemID int, transactionType metadata.TransactionType, quantity int, notes *string, referenceID *int, referenceType *string) (*models.InventoryTransaction, error) {
	entry := models.InventoryTransaction{
		ID:              len(s.entries) + 1,
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

var _ inventory.LedgerStore = (*allocationStore)(nil)

func mapResolver(itemsByComponent map[int]int) func(int) (int, error) {
	return func(componentID int) (int, error) {
		itemID, ok := itemsByComponent[componentID]
		if !ok {
			return 0, fmt.Errorf("component %d is not tracked in inventory", componentID)
		}
		return itemID, nil
	}
}

func TestIssueAllocationCoversFullPartsList(t *testing.T) {
	store := &allocationStore{quantities: map[int]int{10: 8, 20: 4}}
	components := []models.MachineComponent{
		{ComponentID: 1, Quantity: 2},
		{ComponentID: 2, Quantity: 4},
	}

	transactions, err := issueAllocation(store, mapResolver(map[int]int{1: 10, 2: 20}), components, 5)

	assert.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, 6, store.quantities[10])
	assert.Equal(t, 0, store.quantities[20])
	for _, transaction := range transactions {
		assert.Equal(t, metadata.TransactionIssue, transaction.Type)
		assert.Equal(t, 5, *transaction.ReferenceID)
		assert.Equal(t, "machine", *transaction.ReferenceType)
	}
}

func TestIssueAllocationAbortsOnInsufficientStock(t *testing.T) {
	store := &allocationStore{quantities: map[int]int{10: 8, 20: 1}}
	components := []models.MachineComponent{
		{ComponentID: 1, Quantity: 2},
		{ComponentID: 2, Quantity: 4},
	}

	transactions, err := issueAllocation(store, mapResolver(map[int]int{1: 10, 2: 20}), components, 5)

	var insufficient *custom_error.InsufficientInventoryError
	assert.ErrorAs(t, err, &insufficient)
	assert.Nil(t, transactions)
}

func TestIssueAllocationAbortsOnUntrackedComponent(t *testing.T) {
	store := &allocationStore{quantities: map[int]int{10: 8}}
	components := []models.MachineComponent{
		{ComponentID: 1, Quantity: 2},
		{ComponentID: 99, Quantity: 1},
	}

	transactions, err := issueAllocation(store, mapResolver(map[int]int{1: 10}), components, 5)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not tracked in inventory")
	assert.Nil(t, transactions)
}

func TestNextDue(t *testing.T) {
	from := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		expected  time.Time
	}{
		{"weekly", time.Date(2025, 2, 7, 12, 0, 0, 0, time.UTC)},
		{"monthly", time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)}, // Jan 31 + 1 month normalizes past Feb
		{"quarterly", time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)},
		{"yearly", time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)},
		{"unknown", time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextDue(tt.frequency, from))
		})
	}
}

func TestAllOtherTasksComplete(t *testing.T) {
	tasks := []models.MaintenanceTask{
		{ID: 1, Completed: true},
		{ID: 2, Completed: false},
		{ID: 3, Completed: true},
	}

	assert.True(t, allOtherTasksComplete(tasks, 2), "only the task being completed is pending")
	assert.False(t, allOtherTasksComplete(tasks, 1), "another task is still open")
	assert.True(t, allOtherTasksComplete(nil, 5))
}
