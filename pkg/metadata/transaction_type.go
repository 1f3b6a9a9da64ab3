package metadata

import (
	"fmt"
	"strings"
)

type TransactionType string

const (
	TransactionReceipt    TransactionType = "receipt"
	TransactionIssue      TransactionType = "issue"
	TransactionAdjustment TransactionType = "adjustment"
	TransactionTransfer   TransactionType = "transfer"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionReceipt, TransactionIssue, TransactionAdjustment, TransactionTransfer:
		return true
	default:
		return false
	}
}

func NewTransactionType(value string) (TransactionType, error) {
	transactionType := TransactionType(strings.ToLower(strings.TrimSpace(value)))
	if !transactionType.IsValid() {
		return transactionType, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s, %s",
			TransactionReceipt, TransactionIssue, TransactionAdjustment, TransactionTransfer,
		)
	}

	return transactionType, nil
}

func (t TransactionType) String() string {
	return string(t)
}
