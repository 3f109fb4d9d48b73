package core

import "errors"

// Terminal domain errors. Validation and conflict errors are detected
// before any ledger call is attempted; none of them is retryable.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateCertificate = errors.New("certificate with this ID already exists")
	ErrAlreadyRevoked       = errors.New("certificate already revoked")
	ErrUnauthorized         = errors.New("account does not hold the required ledger role")
	ErrRoleAlreadyGranted   = errors.New("address already holds the manager role")
	ErrRoleNotGranted       = errors.New("address does not hold the manager role")
	ErrNoLedgerAddress      = errors.New("account has no ledger address")
)
