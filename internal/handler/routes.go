package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimit echo.MiddlewareFunc, expenseHandler *ExpenseHandler) {
	api := e.Group("/api")
	api.Use(rateLimit)

	api.GET("/expenses", expenseHandler.GetExpenses)
	api.POST("/expenses", expenseHandler.CreateExpense)
	api.DELETE("/expenses/:id", expenseHandler.DeleteExpense)
}
