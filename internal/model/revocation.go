package model

import "time"

// Revocation records one revocation event. At most one exists per
// certificate, enforced by the one-way issued -> revoked transition.
type Revocation struct {
	ID            string    `json:"id" db:"id"`
	CertificateID string    `json:"certificate_id" db:"certificate_id"`
	RevokedBy     string    `json:"revoked_by" db:"revoked_by"`
	Reason        string    `json:"reason" db:"reason"`
	TxHash        string    `json:"tx_hash" db:"tx_hash"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
