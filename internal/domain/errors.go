package domain

import "errors"

// Domain errors
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title exceeds maximum length")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrExpenseDateRequired = errors.New("expense date is required")
)

// Validation constants
const (
	MaxTitleLength = 255
)
