package postgres

import (
	"context"
	"fmt"

	"github.com/dafibh/expense-tracker/expense-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// ListAll retrieves every expense, most recent date first, newest id winning
// ties on the same date
func (r *ExpenseRepository) ListAll() ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, amount, category, expense_date
		FROM expenses
		ORDER BY expense_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// Create persists a new expense and returns the store-assigned id
func (r *ExpenseRepository) Create(expense *domain.Expense) (int32, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}

	var category pgtype.Text
	if expense.Category != nil {
		category.String = *expense.Category
		category.Valid = true
	}

	var expenseDate pgtype.Date
	expenseDate.Time = expense.ExpenseDate
	expenseDate.Valid = true

	var id int32
	err = r.pool.QueryRow(ctx, `
		INSERT INTO expenses (title, amount, category, expense_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		expense.Title, amount, category, expenseDate).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves an expense by its id
func (r *ExpenseRepository) GetByID(id int32) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, amount, category, expense_date
		FROM expenses
		WHERE id = $1`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// DeleteByID removes the expense with the given id and reports affected rows
func (r *ExpenseRepository) DeleteByID(id int32) (int64, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Helper functions

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		id          int32
		title       string
		amount      pgtype.Numeric
		category    pgtype.Text
		expenseDate pgtype.Date
	)
	if err := row.Scan(&id, &title, &amount, &category, &expenseDate); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:          id,
		Title:       title,
		Amount:      pgNumericToDecimal(amount),
		ExpenseDate: expenseDate.Time,
	}
	if category.Valid {
		expense.Category = &category.String
	}
	return expense, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
