package testutil

import (
	"sort"

	"github.com/dafibh/expense-tracker/expense-backend/internal/domain"
)

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32]*domain.Expense
	NextID   int32

	ListAllFn    func() ([]*domain.Expense, error)
	CreateFn     func(expense *domain.Expense) (int32, error)
	GetByIDFn    func(id int32) (*domain.Expense, error)
	DeleteByIDFn func(id int32) (int64, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		NextID:   1,
	}
}

// ListAll returns all expenses ordered by expense_date desc, id desc
func (m *MockExpenseRepository) ListAll() ([]*domain.Expense, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn()
	}

	expenses := make([]*domain.Expense, 0, len(m.Expenses))
	for _, expense := range m.Expenses {
		expenses = append(expenses, expense)
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].ExpenseDate.Equal(expenses[j].ExpenseDate) {
			return expenses[i].ExpenseDate.After(expenses[j].ExpenseDate)
		}
		return expenses[i].ID > expenses[j].ID
	})
	return expenses, nil
}

// Create persists the expense and assigns the next id
func (m *MockExpenseRepository) Create(expense *domain.Expense) (int32, error) {
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}

	stored := *expense
	stored.ID = m.NextID
	m.Expenses[stored.ID] = &stored
	m.NextID++
	return stored.ID, nil
}

// GetByID retrieves an expense by id
func (m *MockExpenseRepository) GetByID(id int32) (*domain.Expense, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(id)
	}

	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// DeleteByID removes an expense and reports affected rows. Ids are never
// reused after deletion.
func (m *MockExpenseRepository) DeleteByID(id int32) (int64, error) {
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(id)
	}

	if _, ok := m.Expenses[id]; !ok {
		return 0, nil
	}
	delete(m.Expenses, id)
	return 1, nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	m.Expenses[expense.ID] = expense
	if expense.ID >= m.NextID {
		m.NextID = expense.ID + 1
	}
}
