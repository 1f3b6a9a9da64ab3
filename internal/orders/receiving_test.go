package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blazinaj/roboconfig-sub000/pkg/metadata"
	"github.com/blazinaj/roboconfig-sub000/pkg/models"
)

func item(ordered, received int) models.PurchaseOrderItem {
	return models.PurchaseOrderItem{Quantity: ordered, ReceivedQuantity: received}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  metadata.OrderStatus
		items    []models.PurchaseOrderItem
		expected metadata.OrderStatus
	}{
		{
			name:     "nothing received keeps current status",
			current:  metadata.OrderApproved,
			items:    []models.PurchaseOrderItem{item(10, 0), item(5, 0)},
			expected: metadata.OrderApproved,
		},
		{
			name:     "some lines received becomes partial",
			current:  metadata.OrderShipped,
			items:    []models.PurchaseOrderItem{item(10, 4), item(5, 0)},
			expected: metadata.OrderPartial,
		},
		{
			name:     "all lines fully received becomes received",
			current:  metadata.OrderPartial,
			items:    []models.PurchaseOrderItem{item(10, 10), item(5, 5)},
			expected: metadata.OrderReceived,
		},
		{
			name:     "over-receipt still counts as received",
			current:  metadata.OrderShipped,
			items:    []models.PurchaseOrderItem{item(10, 12)},
			expected: metadata.OrderReceived,
		},
		{
			name:     "received never regresses to partial",
			current:  metadata.OrderReceived,
			items:    []models.PurchaseOrderItem{item(10, 4)},
			expected: metadata.OrderReceived,
		},
		{
			name:     "no items keeps current status",
			current:  metadata.OrderDraft,
			items:    nil,
			expected: metadata.OrderDraft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatus(tt.current, tt.items))
		})
	}
}
