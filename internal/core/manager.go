package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inovuslabs/certanchor/internal/model"
)

// ManagerService administers the ledger-level hash-manager role. The
// stored address/role columns are display hints; the ledger holds the
// actual grants.
type ManagerService struct {
	db       DB
	ledger   Ledger
	explorer Explorer
	users    *UserService
	audit    *AuditService
	logger   zerolog.Logger
}

func NewManagerService(db DB, l Ledger, ex Explorer, users *UserService, audit *AuditService, logger zerolog.Logger) *ManagerService {
	return &ManagerService{
		db:       db,
		ledger:   l,
		explorer: ex,
		users:    users,
		audit:    audit,
		logger:   logger.With().Str("component", "roles").Logger(),
	}
}

type GrantManagerRequest struct {
	Address string
	Name    string
	Email   string
	Mobile  string
}

type ManagerResult struct {
	UserID      string `json:"user_id"`
	TxHash      string `json:"tx_hash"`
	ExplorerURL string `json:"explorer_url"`
}

// GrantManager grants the hash-manager role to an address and binds it to
// an account. Granting to an address that already holds the role fails
// before any transaction is submitted.
func (s *ManagerService) GrantManager(ctx context.Context, req GrantManagerRequest, actor *model.User) (*ManagerResult, error) {
	for _, f := range []struct{ name, value string }{
		{"address", req.Address}, {"name", req.Name}, {"email", req.Email}, {"mobile", req.Mobile},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
	}

	if err := requireAdmin(ctx, s.ledger, actor); err != nil {
		return nil, err
	}

	mobile := req.Mobile
	target, err := s.users.Upsert(ctx, UpsertUser{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: &mobile,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve manager account: %w", err)
	}

	already, err := s.ledger.HasManagerRole(ctx, req.Address)
	if err != nil {
		return nil, fmt.Errorf("check manager role: %w", err)
	}
	if already {
		return nil, fmt.Errorf("%s: %w", req.Address, ErrRoleAlreadyGranted)
	}

	txHash, err := s.ledger.GrantManagerRole(ctx, req.Address)
	if err != nil {
		return nil, fmt.Errorf("grant manager role to %s: %w", req.Address, err)
	}

	if err := s.users.SetManager(ctx, target.ID, req.Address); err != nil {
		// The grant is on the ledger; the local hint is just stale.
		s.logger.Error().Err(err).Str("user_id", target.ID).Msg("role granted on ledger but local role hint not updated")
	}

	s.audit.Record(ctx, model.ActionAddManager, actor.ID, txHash,
		fmt.Sprintf("Manager added: %s (%s)", req.Name, req.Email))

	s.logger.Info().Str("address", req.Address).Str("tx_hash", txHash).Msg("manager role granted")
	return &ManagerResult{
		UserID:      target.ID,
		TxHash:      txHash,
		ExplorerURL: s.explorer.TxURL(txHash),
	}, nil
}

// RevokeManager revokes the hash-manager role from the account's stored
// address, clears the address and resets the role hint. Revoking from an
// account that never held the role fails without submitting a transaction.
func (s *ManagerService) RevokeManager(ctx context.Context, userID string, actor *model.User) (*ManagerResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	if err := requireAdmin(ctx, s.ledger, actor); err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.Address == nil || *target.Address == "" {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNoLedgerAddress)
	}

	holds, err := s.ledger.HasManagerRole(ctx, *target.Address)
	if err != nil {
		return nil, fmt.Errorf("check manager role: %w", err)
	}
	if !holds {
		return nil, fmt.Errorf("%s: %w", *target.Address, ErrRoleNotGranted)
	}

	txHash, err := s.ledger.RevokeManagerRole(ctx, *target.Address)
	if err != nil {
		return nil, fmt.Errorf("revoke manager role from %s: %w", *target.Address, err)
	}

	if err := s.users.ClearManager(ctx, target.ID); err != nil {
		s.logger.Error().Err(err).Str("user_id", target.ID).Msg("role revoked on ledger but local role hint not cleared")
	}

	s.audit.Record(ctx, model.ActionRemoveManager, actor.ID, txHash,
		fmt.Sprintf("Manager removed: %s (%s)", target.Name, target.Email))

	s.logger.Info().Str("user_id", userID).Str("tx_hash", txHash).Msg("manager role revoked")
	return &ManagerResult{
		UserID:      target.ID,
		TxHash:      txHash,
		ExplorerURL: s.explorer.TxURL(txHash),
	}, nil
}
