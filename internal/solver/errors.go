package solver

import "errors"

var (
	// ErrNoItems is returned when the item slice is nil or empty.
	ErrNoItems = errors.New("items must contain at least one entry")
	// ErrTooManyItems is returned when the item count exceeds the configured ceiling.
	ErrTooManyItems = errors.New("item count exceeds the configured maximum")
	// ErrInvalidCapacity is returned when the capacity is negative or exceeds the configured ceiling.
	ErrInvalidCapacity = errors.New("capacity must be between 0 and the configured maximum")
	// ErrInvalidItem is returned when an item has a non-positive weight or a negative value.
	ErrInvalidItem = errors.New("item weight must be positive and value non-negative")
	// ErrDimensionOverflow is returned when the DP table dimensions cannot be represented.
	ErrDimensionOverflow = errors.New("workspace dimensions overflow the addressable range")
	// ErrIntOverflow is returned when a value accumulation would exceed the int range.
	ErrIntOverflow = errors.New("value accumulation overflows the integer range")
	// ErrAlloc is returned when the workspace would exceed the allocation budget.
	ErrAlloc = errors.New("workspace exceeds the allocation budget")
)
