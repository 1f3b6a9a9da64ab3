package metadata

import (
	"testing"
)

func TestCategoryIsValid(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		expected bool
	}{
		{"drive category", CategoryDrive, true},
		{"controller category", CategoryController, true},
		{"object manipulation category", CategoryObjectManipulation, true},
		{"chassis category", CategoryChassis, true},
		{"unknown category", Category("hydraulics"), false},
		{"empty category", Category(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.category.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{"valid drive", "drive", CategoryDrive, false},
		{"valid uppercase SENSORS", "SENSORS", CategorySensors, false},
		{"valid with spaces", "  object manipulation ", CategoryObjectManipulation, false},
		{"invalid unknown", "hydraulics", "", true},
		{"invalid empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCategory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && got != tt.want {
				t.Errorf("NewCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTransactionType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid receipt", "receipt", false},
		{"valid uppercase ISSUE", "ISSUE", false},
		{"valid adjustment with spaces", " adjustment ", false},
		{"valid transfer", "transfer", false},
		{"invalid unknown", "restock", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTransactionType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTransactionType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && !got.IsValid() {
				t.Errorf("NewTransactionType() = %v is not valid", got)
			}
		})
	}
}

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minimum  int
		expected StockStatus
	}{
		{"zero quantity", 0, 5, StockOutOfStock},
		{"zero quantity zero minimum", 0, 0, StockOutOfStock},
		{"at minimum", 5, 5, StockLow},
		{"below minimum", 3, 5, StockLow},
		{"one above minimum", 6, 5, StockInStock},
		{"well stocked", 100, 5, StockInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStock(tt.quantity, tt.minimum); got != tt.expected {
				t.Errorf("ClassifyStock(%d, %d) = %v, want %v", tt.quantity, tt.minimum, got, tt.expected)
			}
		})
	}
}
