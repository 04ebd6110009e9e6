package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/expense-tracker/expense-backend/internal/domain"
	"github.com/dafibh/expense-tracker/expense-backend/internal/service"
	"github.com/dafibh/expense-tracker/expense-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newTestHandler() (*ExpenseHandler, *testutil.MockExpenseRepository) {
	repo := testutil.NewMockExpenseRepository()
	expenseService := service.NewExpenseService(repo)
	return NewExpenseHandler(expenseService), repo
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", s, err)
	}
	return parsed
}

func TestCreateExpense_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler()

	reqBody := `{"title": "Coffee", "amount": 4.50, "category": "Food", "expense_date": "2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.ID == 0 {
		t.Error("Expected a newly assigned id")
	}
	if response.Title != "Coffee" {
		t.Errorf("Expected title 'Coffee', got %s", response.Title)
	}
	if response.Amount != "4.50" {
		t.Errorf("Expected amount '4.50', got %s", response.Amount)
	}
	if response.Category == nil || *response.Category != "Food" {
		t.Errorf("Expected category 'Food', got %v", response.Category)
	}
	if response.ExpenseDate != "2024-01-01" {
		t.Errorf("Expected expense_date '2024-01-01', got %s", response.ExpenseDate)
	}
}

func TestCreateExpense_StringAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler()

	// The web form posts amount as a JSON string
	reqBody := `{"title": "Lunch", "amount": "12.30", "expense_date": "2024-01-02"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "12.30" {
		t.Errorf("Expected amount '12.30', got %s", response.Amount)
	}
}

func TestCreateExpense_EmptyCategoryIsNull(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler()

	reqBody := `{"title": "Parking", "amount": "5.00", "category": "", "expense_date": "2024-01-03"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), `"category":null`) {
		t.Errorf("Expected category to serialize as null, got %s", rec.Body.String())
	}
}

func TestCreateExpense_MissingFields(t *testing.T) {
	bodies := map[string]string{
		"missing title":  `{"amount": "4.50", "expense_date": "2024-01-01"}`,
		"missing amount": `{"title": "Coffee", "expense_date": "2024-01-01"}`,
		"missing date":   `{"title": "Coffee", "amount": "4.50"}`,
		"blank title":    `{"title": "  ", "amount": "4.50", "expense_date": "2024-01-01"}`,
	}

	for name, reqBody := range bodies {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			handler, repo := newTestHandler()

			req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.CreateExpense(c); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}

			var response ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if response.Error != "Missing required fields" {
				t.Errorf("Expected error 'Missing required fields', got %s", response.Error)
			}

			if len(repo.Expenses) != 0 {
				t.Error("Expected no row to be persisted")
			}
		})
	}
}

func TestCreateExpense_InvalidDate(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler()

	reqBody := `{"title": "Coffee", "amount": "4.50", "expense_date": "01/01/2024"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateExpense_StorageError(t *testing.T) {
	e := echo.New()
	handler, repo := newTestHandler()

	repo.CreateFn = func(expense *domain.Expense) (int32, error) {
		return 0, errors.New("connection refused")
	}

	reqBody := `{"title": "Coffee", "amount": "4.50", "expense_date": "2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Database error") {
		t.Errorf("Expected generic 'Database error' payload, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("Internal error detail must not leak to the client")
	}
}

func TestGetExpenses_Empty(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestGetExpenses_Ordering(t *testing.T) {
	e := echo.New()
	handler, repo := newTestHandler()

	repo.AddExpense(&domain.Expense{ID: 1, Title: "Oldest", Amount: decimal.NewFromInt(1), ExpenseDate: mustDate(t, "2024-01-01")})
	repo.AddExpense(&domain.Expense{ID: 2, Title: "Tied early", Amount: decimal.NewFromInt(2), ExpenseDate: mustDate(t, "2024-02-01")})
	repo.AddExpense(&domain.Expense{ID: 3, Title: "Tied late", Amount: decimal.NewFromInt(3), ExpenseDate: mustDate(t, "2024-02-01")})

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 3 {
		t.Fatalf("Expected 3 expenses, got %d", len(response))
	}
	if response[0].ID != 3 || response[1].ID != 2 || response[2].ID != 1 {
		t.Errorf("Expected order [3 2 1], got [%d %d %d]", response[0].ID, response[1].ID, response[2].ID)
	}
}

func TestGetExpenses_StorageError(t *testing.T) {
	e := echo.New()
	handler, repo := newTestHandler()

	repo.ListAllFn = func() ([]*domain.Expense, error) {
		return nil, errors.New("connection refused")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetExpenses(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Error != "Database error" {
		t.Errorf("Expected error 'Database error', got %s", response.Error)
	}
}

func TestDeleteExpense_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newTestHandler()

	repo.AddExpense(&domain.Expense{ID: 5, Title: "Coffee", Amount: decimal.NewFromInt(4), ExpenseDate: mustDate(t, "2024-01-01")})

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Message != "Expense deleted" {
		t.Errorf("Expected message 'Expense deleted', got %s", response.Message)
	}

	if len(repo.Expenses) != 0 {
		t.Error("Expected the row to be removed")
	}
}

func TestDeleteExpense_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Error != "Expense not found" {
		t.Errorf("Expected error 'Expense not found', got %s", response.Error)
	}
}

func TestDeleteExpense_InvalidID(t *testing.T) {
	e := echo.New()
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteExpense_IDOutOfRange(t *testing.T) {
	e := echo.New()
	handler, repo := newTestHandler()

	// 2^32 + 5 must not wrap to id 5 and remove an unrelated row
	repo.AddExpense(&domain.Expense{ID: 5, Title: "Coffee", Amount: decimal.NewFromInt(4), ExpenseDate: mustDate(t, "2024-01-01")})

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/4294967301", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4294967301")

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(repo.Expenses) != 1 {
		t.Error("Expected the existing row to survive")
	}
}

func TestDeleteExpense_StorageError(t *testing.T) {
	e := echo.New()
	handler, repo := newTestHandler()

	repo.DeleteByIDFn = func(id int32) (int64, error) {
		return 0, errors.New("connection refused")
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
}
