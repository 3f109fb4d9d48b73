package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inovuslabs/certanchor/internal/model"
	"github.com/inovuslabs/certanchor/internal/platform"
)

// AuditService writes and reads the append-only audit trail. Writes are
// best-effort observability, not a correctness gate: by the time auditing
// runs, the anchor and record already exist, so a failed write is logged
// and swallowed rather than failing the parent operation.
type AuditService struct {
	db     DB
	logger zerolog.Logger
}

func NewAuditService(db DB, logger zerolog.Logger) *AuditService {
	return &AuditService{db: db, logger: logger.With().Str("component", "audit").Logger()}
}

// Record appends one audit entry.
func (s *AuditService) Record(ctx context.Context, action, userID, txHash, description string) {
	if action == "" || userID == "" || txHash == "" {
		s.logger.Error().Str("action", action).Msg("audit entry missing required fields, dropping")
		return
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO audit_logs (id, user_id, action, tx_hash, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		platform.NewID(), userID, action, txHash, description, time.Now(),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("action", action).Str("tx_hash", txHash).Msg("failed to write audit log")
	}
}

// List returns audit entries newest first, optionally filtered by user,
// action and time window.
func (s *AuditService) List(ctx context.Context, f model.AuditFilter) ([]model.AuditLog, error) {
	query := `SELECT id, user_id, action, tx_hash, description, created_at FROM audit_logs`
	var args []any
	var conds []string

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []model.AuditLog
	for rows.Next() {
		var l model.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.TxHash, &l.Description, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, nil
}

// Recent returns the newest n entries for the dashboard.
func (s *AuditService) Recent(ctx context.Context, n int) ([]model.AuditLog, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, action, tx_hash, description, created_at
		 FROM audit_logs ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("recent audit logs: %w", err)
	}
	defer rows.Close()

	var logs []model.AuditLog
	for rows.Next() {
		var l model.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.TxHash, &l.Description, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, nil
}
