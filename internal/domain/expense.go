package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record. Category is optional and stays nil
// when the user did not pick one; the "Other" label is a display concern.
type Expense struct {
	ID          int32           `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category"`
	ExpenseDate time.Time       `json:"expense_date"`
}

type ExpenseRepository interface {
	// ListAll returns every expense ordered by expense_date descending,
	// ties broken by id descending.
	ListAll() ([]*Expense, error)
	// Create persists the expense and returns the store-assigned id.
	Create(expense *Expense) (int32, error)
	GetByID(id int32) (*Expense, error)
	// DeleteByID removes the row if present and reports affected rows (0 or 1).
	DeleteByID(id int32) (int64, error)
}
