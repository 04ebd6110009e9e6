package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/expense-tracker/expense-backend/internal/domain"
	"github.com/dafibh/expense-tracker/expense-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the create expense request body. Amount is
// kept raw because the form posts it as a JSON string while API clients send
// a number; both decode to the same decimal.
type CreateExpenseRequest struct {
	Title       string          `json:"title"`
	Amount      json.RawMessage `json:"amount"`
	Category    *string         `json:"category"`
	ExpenseDate string          `json:"expense_date"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          int32   `json:"id"`
	Title       string  `json:"title"`
	Amount      string  `json:"amount"`
	Category    *string `json:"category"`
	ExpenseDate string  `json:"expense_date"`
}

// GetExpenses handles GET /api/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	expenses, err := h.expenseService.ListExpenses()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list expenses")
		return NewInternalError(c, "Database error")
	}

	response := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = toExpenseResponse(expense)
	}

	return c.JSON(http.StatusOK, response)
}

// CreateExpense handles POST /api/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Title) == "" || isAbsent(req.Amount) || req.ExpenseDate == "" {
		return NewBadRequestError(c, "Missing required fields")
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return NewBadRequestError(c, "Amount must be a valid number")
	}

	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return NewBadRequestError(c, "Expense date must be in YYYY-MM-DD format")
	}

	input := service.CreateExpenseInput{
		Title:       req.Title,
		Amount:      amount,
		Category:    req.Category,
		ExpenseDate: expenseDate,
	}

	expense, err := h.expenseService.CreateExpense(input)
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) || errors.Is(err, domain.ErrExpenseDateRequired) {
			return NewBadRequestError(c, "Missing required fields")
		}
		if errors.Is(err, domain.ErrTitleTooLong) {
			return NewBadRequestError(c, "Title must be 255 characters or less")
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewBadRequestError(c, "Amount must be positive")
		}
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create expense")
		return NewInternalError(c, "Database error")
	}

	log.Info().Int32("expense_id", expense.ID).Str("title", expense.Title).Msg("Expense created")

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /api/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewBadRequestError(c, "Invalid expense ID")
	}

	if err := h.expenseService.DeleteExpense(int32(id)); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Int64("expense_id", id).Msg("Failed to delete expense")
		return NewInternalError(c, "Database error")
	}

	log.Info().Int64("expense_id", id).Msg("Expense deleted")

	return c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted"})
}

// isAbsent reports whether an amount field was omitted or explicitly null
func isAbsent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// parseAmount accepts a JSON number or a quoted decimal string
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return decimal.NewFromString(s)
}

// Helper function to convert domain.Expense to ExpenseResponse
func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		Title:       expense.Title,
		Amount:      expense.Amount.StringFixed(2),
		Category:    expense.Category,
		ExpenseDate: expense.ExpenseDate.Format("2006-01-02"),
	}
}
