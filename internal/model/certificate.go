package model

import "time"

// Certificate is one issued credential anchored on the ledger. The hash is
// computed once at issuance from the canonical field set and never
// recomputed; status only ever transitions issued -> revoked.
type Certificate struct {
	ID            string    `json:"id" db:"id"`
	CertificateID string    `json:"certificate_id" db:"certificate_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Hash          string    `json:"hash" db:"hash"`
	TxHash        string    `json:"tx_hash" db:"tx_hash"`
	EventID       string    `json:"event_id" db:"event_id"`
	URL           string    `json:"url" db:"url"`
	IssuedAt      time.Time `json:"issued_at" db:"issued_at"`
	IssuedBy      string    `json:"issued_by" db:"issued_by"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

const (
	CertStatusIssued  = "issued"
	CertStatusRevoked = "revoked"
)

// CertificateView is a certificate joined with its recipient's name,
// shaped for display.
type CertificateView struct {
	CertificateID string    `json:"certificate_id"`
	RecipientName string    `json:"recipient_name"`
	EventID       string    `json:"event_id"`
	URL           string    `json:"url"`
	Hash          string    `json:"hash"`
	TxHash        string    `json:"tx_hash"`
	IssuedAt      time.Time `json:"issued_at"`
	Status        string    `json:"status"`
}

// CertificateSummary is a search result row.
type CertificateSummary struct {
	CertificateID string    `json:"certificate_id"`
	RecipientName string    `json:"recipient_name"`
	EventID       string    `json:"event_id"`
	IssuedAt      time.Time `json:"issued_at"`
}
