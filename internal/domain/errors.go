package domain

import "errors"

var (
	// Input errors
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidKind        = errors.New("invalid transaction type")
	ErrInvalidAllocation  = errors.New("invalid allocation")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidDescription = errors.New("invalid description")

	// Store errors
	ErrPersistenceFailure  = errors.New("persistence failure")
	ErrTransactionNotFound = errors.New("transaction not found")
)
