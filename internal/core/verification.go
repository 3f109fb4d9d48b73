package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/inovuslabs/certanchor/internal/model"
)

// VerificationService answers whether a credential was issued and has not
// been revoked. The ledger is authoritative for validity; the record store
// only enriches the answer with metadata and may be momentarily stale.
type VerificationService struct {
	db       DB
	ledger   Ledger
	explorer Explorer
}

func NewVerificationService(db DB, l Ledger, ex Explorer) *VerificationService {
	return &VerificationService{db: db, ledger: l, explorer: ex}
}

// VerificationResult merges the ledger's answer with any persisted
// metadata for the hash.
type VerificationResult struct {
	Valid       bool                   `json:"valid"`
	TxHash      string                 `json:"tx_hash,omitempty"`
	Certificate *model.CertificateView `json:"certificate,omitempty"`
}

const certificateViewColumns = `c.certificate_id, u.name, c.event_id, c.url, c.hash, c.tx_hash, c.issued_at, c.status`

// VerifyHash asks the ledger whether the hash is anchored and merges in
// the local record when one exists. The record store is not trusted alone;
// it could be stale or tampered relative to the immutable ledger.
func (s *VerificationService) VerifyHash(ctx context.Context, hash string) (*VerificationResult, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, fmt.Errorf("%w: hash is required", ErrInvalidInput)
	}

	var (
		valid bool
		view  *model.CertificateView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		valid, err = s.ledger.HashExists(gctx, hash)
		return err
	})
	g.Go(func() error {
		v, err := s.viewByHash(gctx, hash)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lookup certificate by hash: %w", err)
		}
		view = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &VerificationResult{Valid: valid, Certificate: view}
	if view != nil {
		result.TxHash = view.TxHash
	}
	return result, nil
}

func (s *VerificationService) viewByHash(ctx context.Context, hash string) (*model.CertificateView, error) {
	var v model.CertificateView
	err := s.db.QueryRow(ctx,
		`SELECT `+certificateViewColumns+`
		 FROM certificates c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.hash = $1`, hash,
	).Scan(&v.CertificateID, &v.RecipientName, &v.EventID, &v.URL, &v.Hash, &v.TxHash, &v.IssuedAt, &v.Status)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByCertificateID is a fast read of the record store joined with the
// recipient's name. A missing row is ErrNotFound, which callers must keep
// distinct from transport failure.
func (s *VerificationService) GetByCertificateID(ctx context.Context, certificateID string) (*model.CertificateView, error) {
	var v model.CertificateView
	err := s.db.QueryRow(ctx,
		`SELECT `+certificateViewColumns+`
		 FROM certificates c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.certificate_id = $1`, certificateID,
	).Scan(&v.CertificateID, &v.RecipientName, &v.EventID, &v.URL, &v.Hash, &v.TxHash, &v.IssuedAt, &v.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("certificate %s: %w", certificateID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get certificate %s: %w", certificateID, err)
	}
	return &v, nil
}

// Search matches the query case-insensitively as a substring of the
// certificate id or the recipient's name. An empty result is a valid
// answer, not an error. Ordering is by certificate id, stable for a given
// store state.
func (s *VerificationService) Search(ctx context.Context, query string) ([]model.CertificateSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.Query(ctx,
		`SELECT c.certificate_id, u.name, c.event_id, c.issued_at
		 FROM certificates c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.certificate_id ILIKE $1 OR u.name ILIKE $1
		 ORDER BY c.certificate_id`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search certificates: %w", err)
	}
	defer rows.Close()

	summaries := []model.CertificateSummary{}
	for rows.Next() {
		var s model.CertificateSummary
		if err := rows.Scan(&s.CertificateID, &s.RecipientName, &s.EventID, &s.IssuedAt); err != nil {
			return nil, fmt.Errorf("scan certificate summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate certificate summaries: %w", err)
	}
	return summaries, nil
}

// Transaction enriches a verified certificate with block detail from the
// explorer, tolerating indexing lag (ledger.ErrTxNotFound passes through).
func (s *VerificationService) Transaction(ctx context.Context, txHash string) (*model.Transaction, error) {
	if strings.TrimSpace(txHash) == "" {
		return nil, fmt.Errorf("%w: tx hash is required", ErrInvalidInput)
	}
	return s.explorer.GetTransaction(ctx, txHash)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
