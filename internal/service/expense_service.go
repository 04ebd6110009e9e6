package service

import (
	"strings"
	"time"

	"github.com/dafibh/expense-tracker/expense-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense-related business logic
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput holds the input for creating an expense
type CreateExpenseInput struct {
	Title       string
	Amount      decimal.Decimal
	Category    *string
	ExpenseDate time.Time
}

// ListExpenses retrieves all expenses, most recent first
func (s *ExpenseService) ListExpenses() ([]*domain.Expense, error) {
	return s.expenseRepo.ListAll()
}

// CreateExpense creates a new expense with validation. The returned record is
// re-read from the store by its new id so the response reflects exactly what
// was persisted, not the echoed input.
func (s *ExpenseService) CreateExpense(input CreateExpenseInput) (*domain.Expense, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if len(title) > domain.MaxTitleLength {
		return nil, domain.ErrTitleTooLong
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if input.ExpenseDate.IsZero() {
		return nil, domain.ErrExpenseDateRequired
	}

	// An empty category is stored as NULL, never as a placeholder label
	var category *string
	if input.Category != nil {
		trimmed := strings.TrimSpace(*input.Category)
		if trimmed != "" {
			category = &trimmed
		}
	}

	expense := &domain.Expense{
		Title:       title,
		Amount:      input.Amount,
		Category:    category,
		ExpenseDate: input.ExpenseDate,
	}

	id, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	// Read-back is a second independent statement; a concurrent delete in
	// between surfaces as not found, accepted for single-user use.
	return s.expenseRepo.GetByID(id)
}

// DeleteExpense removes an expense by id
func (s *ExpenseService) DeleteExpense(id int32) error {
	affected, err := s.expenseRepo.DeleteByID(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}
