package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a store transaction
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessing marks a key whose request is still in flight
	IdempotencyProcessing = "processing"
)

// Operation names reported to the Recorder.
const (
	OperationRecord   = "record"
	OperationTransfer = "transfer"
	OperationDelete   = "delete"
	OperationList     = "list"
)
