package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/inovuslabs/certanchor/internal/canonical"
	"github.com/inovuslabs/certanchor/internal/model"
	"github.com/inovuslabs/certanchor/internal/platform"
)

// CertificateService orchestrates issuance: canonicalization, duplicate
// check, ledger anchoring, persistence and audit, in that order. The
// certificate row is persisted only after on-chain confirmation so a local
// record never points at a non-existent anchor.
type CertificateService struct {
	db       DB
	ledger   Ledger
	explorer Explorer
	users    *UserService
	audit    *AuditService
	logger   zerolog.Logger
}

func NewCertificateService(db DB, l Ledger, ex Explorer, users *UserService, audit *AuditService, logger zerolog.Logger) *CertificateService {
	return &CertificateService{
		db:       db,
		ledger:   l,
		explorer: ex,
		users:    users,
		audit:    audit,
		logger:   logger.With().Str("component", "issuance").Logger(),
	}
}

// IssueRequest carries the fields of one issuance. All fields are required
// and must be non-blank.
type IssueRequest struct {
	CertificateID string
	RecipientName string
	Email         string
	Mobile        string
	EventID       string
	URL           string
	IssueDate     string
}

// IssueResult is returned after the anchor is confirmed and the record
// persisted.
type IssueResult struct {
	Hash        string `json:"hash"`
	TxHash      string `json:"tx_hash"`
	ExplorerURL string `json:"explorer_url"`
}

func (r IssueRequest) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"certificate_id", r.CertificateID},
		{"recipient_name", r.RecipientName},
		{"email", r.Email},
		{"mobile", r.Mobile},
		{"event_id", r.EventID},
		{"url", r.URL},
		{"issue_date", r.IssueDate},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
	}
	return nil
}

func parseIssueDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: issue_date must be YYYY-MM-DD or RFC 3339", ErrInvalidInput)
}

// Issue anchors one certificate. The duplicate check runs before any
// ledger call so a known-duplicate id never produces a second anchoring
// transaction; the unique constraint on certificate_id is the backstop
// against a race between two concurrent calls.
func (s *CertificateService) Issue(ctx context.Context, req IssueRequest, issuer *model.User) (*IssueResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	issuedAt, err := parseIssueDate(req.IssueDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.certificateIDExists(ctx, req.CertificateID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", req.CertificateID, ErrDuplicateCertificate)
	}

	if err := requireManager(ctx, s.ledger, issuer); err != nil {
		return nil, err
	}

	mobile := req.Mobile
	recipient, err := s.users.Upsert(ctx, UpsertUser{
		Name:   req.RecipientName,
		Email:  req.Email,
		Mobile: &mobile,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}

	hash, input := canonical.Fingerprint(canonical.Fields{
		CertificateID: req.CertificateID,
		RecipientName: req.RecipientName,
		EventID:       req.EventID,
		IssueDate:     req.IssueDate,
		IssuedBy:      issuer.ID,
	})
	s.logger.Debug().Str("certificate_id", req.CertificateID).Str("input", input).Str("hash", hash).Msg("canonicalized")

	txHash, err := s.ledger.StoreHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("anchor certificate %s: %w", req.CertificateID, err)
	}

	now := time.Now()
	_, err = s.db.Exec(ctx,
		`INSERT INTO certificates (id, certificate_id, user_id, hash, tx_hash, event_id, url, issued_at, issued_by, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		platform.NewID(), req.CertificateID, recipient.ID, hash, txHash, req.EventID, req.URL,
		issuedAt, issuer.ID, model.CertStatusIssued, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent issuance won the race after our pre-check. The
			// anchor for this attempt is already on the ledger; surface the
			// conflict for manual reconciliation instead of hiding it.
			return nil, fmt.Errorf("%s anchored as %s but already recorded: %w", req.CertificateID, txHash, ErrDuplicateCertificate)
		}
		return nil, fmt.Errorf("persist certificate %s (anchored as %s): %w", req.CertificateID, txHash, err)
	}

	s.audit.Record(ctx, model.ActionAddCertificate, issuer.ID, txHash,
		fmt.Sprintf("Certificate added with ID: %s", req.CertificateID))

	s.logger.Info().Str("certificate_id", req.CertificateID).Str("tx_hash", txHash).Msg("certificate issued")
	return &IssueResult{
		Hash:        hash,
		TxHash:      txHash,
		ExplorerURL: s.explorer.TxURL(txHash),
	}, nil
}

func (s *CertificateService) certificateIDExists(ctx context.Context, certificateID string) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx,
		`SELECT 1 FROM certificates WHERE certificate_id = $1`, certificateID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check duplicate certificate: %w", err)
	}
	return true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
