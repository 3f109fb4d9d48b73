package model

import "time"

// AuditLog is an append-only record of a state-changing action.
// Rows are never updated or deleted after creation.
type AuditLog struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Action      string    `json:"action" db:"action"`
	TxHash      string    `json:"tx_hash" db:"tx_hash"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

const (
	ActionAddManager        = "ADD_MANAGER"
	ActionRemoveManager     = "REMOVE_MANAGER"
	ActionAddCertificate    = "ADD_CERTIFICATE"
	ActionRevokeCertificate = "REVOKE_CERTIFICATE"
)

// AuditFilter narrows an audit log listing. Zero values mean "no filter".
type AuditFilter struct {
	UserID string
	Action string
	From   *time.Time
	To     *time.Time
}
