package storage

import "errors"

var (
	ErrEmptyTable       = errors.New("table is empty")
	ErrColumnNotFound   = errors.New("column not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyCustomer    = errors.New("customer name is empty")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)
