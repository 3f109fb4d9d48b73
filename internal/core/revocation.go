package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/inovuslabs/certanchor/internal/model"
	"github.com/inovuslabs/certanchor/internal/platform"
)

// RevocationService transitions a certificate from issued to revoked,
// anchored by a second ledger transaction. The status flip and the
// revocation record land in one database transaction: both or neither.
type RevocationService struct {
	db       DB
	ledger   Ledger
	explorer Explorer
	audit    *AuditService
	logger   zerolog.Logger
}

func NewRevocationService(db DB, l Ledger, ex Explorer, audit *AuditService, logger zerolog.Logger) *RevocationService {
	return &RevocationService{
		db:       db,
		ledger:   l,
		explorer: ex,
		audit:    audit,
		logger:   logger.With().Str("component", "revocation").Logger(),
	}
}

type RevokeResult struct {
	Hash        string `json:"hash"`
	TxHash      string `json:"tx_hash"`
	ExplorerURL string `json:"explorer_url"`
}

const maxReasonLength = 500

// Revoke revokes one issued certificate. Revoking a nonexistent or
// already-revoked certificate fails rather than silently succeeding.
func (s *RevocationService) Revoke(ctx context.Context, certificateID, reason string, actor *model.User) (*RevokeResult, error) {
	reason = strings.TrimSpace(reason)
	if certificateID == "" {
		return nil, fmt.Errorf("%w: certificate_id is required", ErrInvalidInput)
	}
	if reason == "" || len(reason) > maxReasonLength {
		return nil, fmt.Errorf("%w: reason must be 1-%d characters", ErrInvalidInput, maxReasonLength)
	}

	var id, hash, status string
	err := s.db.QueryRow(ctx,
		`SELECT id, hash, status FROM certificates WHERE certificate_id = $1`, certificateID,
	).Scan(&id, &hash, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("certificate %s: %w", certificateID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get certificate %s: %w", certificateID, err)
	}
	if status != model.CertStatusIssued {
		return nil, fmt.Errorf("certificate %s: %w", certificateID, ErrAlreadyRevoked)
	}

	if err := requireManager(ctx, s.ledger, actor); err != nil {
		return nil, err
	}

	txHash, err := s.ledger.RevokeHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("revoke anchor for %s: %w", certificateID, err)
	}

	if err := s.persistRevocation(ctx, certificateID, reason, actor.ID, txHash); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.ActionRevokeCertificate, actor.ID, txHash,
		fmt.Sprintf("Revoked certificate with ID: %s", certificateID))

	s.logger.Info().Str("certificate_id", certificateID).Str("tx_hash", txHash).Msg("certificate revoked")
	return &RevokeResult{
		Hash:        hash,
		TxHash:      txHash,
		ExplorerURL: s.explorer.TxURL(txHash),
	}, nil
}

// persistRevocation flips the status and records the revocation in one
// transaction. The conditional UPDATE doubles as a race guard: a
// concurrent revoke that got there first leaves zero rows to update.
func (s *RevocationService) persistRevocation(ctx context.Context, certificateID, reason, actorID, txHash string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin revocation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE certificates SET status = $2, updated_at = now()
		 WHERE certificate_id = $1 AND status = $3`,
		certificateID, model.CertStatusRevoked, model.CertStatusIssued,
	)
	if err != nil {
		return fmt.Errorf("flip certificate %s status (revoked on ledger as %s): %w", certificateID, txHash, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("certificate %s: %w", certificateID, ErrAlreadyRevoked)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO revoked_certificates (id, certificate_id, revoked_by, reason, tx_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		platform.NewID(), certificateID, actorID, reason, txHash, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("record revocation of %s: %w", certificateID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit revocation of %s: %w", certificateID, err)
	}
	return nil
}
