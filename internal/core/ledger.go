package core

import (
	"context"
	"fmt"

	"github.com/inovuslabs/certanchor/internal/model"
)

// Ledger is the write/read surface of the anchoring contract the services
// depend on. Writes block until confirmation and return the transaction
// hash; the concrete client serializes them over its single signer.
type Ledger interface {
	StoreHash(ctx context.Context, hash string) (string, error)
	RevokeHash(ctx context.Context, hash string) (string, error)
	HashExists(ctx context.Context, hash string) (bool, error)
	GrantManagerRole(ctx context.Context, address string) (string, error)
	RevokeManagerRole(ctx context.Context, address string) (string, error)
	HasManagerRole(ctx context.Context, address string) (bool, error)
	HasAdminRole(ctx context.Context, address string) (bool, error)
}

// Explorer resolves transaction detail from the block-explorer read API.
type Explorer interface {
	GetTransaction(ctx context.Context, txHash string) (*model.Transaction, error)
	TxURL(txHash string) string
}

// requireManager authorizes an account against the ledger at request time.
// The stored role column is never consulted: the ledger is the single
// source of truth for authorization.
func requireManager(ctx context.Context, l Ledger, u *model.User) error {
	if u == nil || u.Address == nil || *u.Address == "" {
		return ErrUnauthorized
	}
	ok, err := l.HasManagerRole(ctx, *u.Address)
	if err != nil {
		return fmt.Errorf("check manager role: %w", err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

func requireAdmin(ctx context.Context, l Ledger, u *model.User) error {
	if u == nil || u.Address == nil || *u.Address == "" {
		return ErrUnauthorized
	}
	ok, err := l.HasAdminRole(ctx, *u.Address)
	if err != nil {
		return fmt.Errorf("check admin role: %w", err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}
