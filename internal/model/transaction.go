package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/moneyflow/internal/common"
)

// Transaction is a single income or expense entry.
// Amount is always positive; the sign is implied by Type.
type Transaction struct {
	CreatedAt   time.Time `json:"createdAt"`
	Date        Date      `json:"date"`
	ID          string    `json:"id"`
	Type        EntryType `json:"type"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Amount      float64   `json:"amount"`
}

// Validate checks the required transaction fields.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: transaction type must be income or expense", common.ErrValidation)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", common.ErrValidation)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return fmt.Errorf("%w: category is required", common.ErrValidation)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrValidation)
	}
	return nil
}

// IsIncome reports whether the transaction adds money.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// TransactionPatch holds the fields to change on a transaction.
type TransactionPatch struct {
	Type        *EntryType
	Amount      *float64
	Description *string
	CategoryID  *string
	Date        *Date
}

// Apply returns t with the patch merged in. ID and CreatedAt are never changed.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	return t
}
