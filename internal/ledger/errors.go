package ledger

import "errors"

var (
	// ErrUnavailable covers connectivity loss to the node RPC. Reads may be
	// retried; writes must be reconciled first.
	ErrUnavailable = errors.New("ledger unavailable")

	// ErrRejected means the node refused the transaction before submission,
	// typically because the contract call would revert.
	ErrRejected = errors.New("ledger rejected transaction")

	// ErrReverted means the transaction was mined but its execution failed.
	ErrReverted = errors.New("transaction reverted")

	// ErrTimeout means the transaction was submitted but not confirmed
	// within the bounded wait. The transaction may still land; the caller
	// must not assume either outcome and must reconcile before any retry.
	ErrTimeout = errors.New("transaction confirmation timed out")

	// ErrTxNotFound means the block explorer has not indexed the
	// transaction yet. Eventually consistent; retry or degrade gracefully.
	ErrTxNotFound = errors.New("transaction not found on explorer")
)
