package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inovuslabs/certanchor/internal/model"
	"github.com/inovuslabs/certanchor/internal/platform"
)

// UserService manages accounts in the record store.
type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

// UpsertUser carries the fields for an idempotent account upsert.
// Pointer/optional fields left unset preserve whatever is stored.
type UpsertUser struct {
	Name    string
	Email   string
	Mobile  *string
	Address *string
	Role    string
	Status  string
}

const userColumns = `id, name, email, mobile, address, role, status, created_at, updated_at`

// Upsert resolves an account by email-or-mobile and merges the given
// fields into it, or creates it when no account matches. Merge rules:
// name and status are last-write-wins when provided; mobile, address and
// role preserve the existing value when the incoming one is absent.
func (s *UserService) Upsert(ctx context.Context, in UpsertUser) (*model.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	existing, err := s.findByEmailOrMobile(ctx, in.Email, in.Mobile)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	now := time.Now()

	if existing == nil {
		u := &model.User{
			ID:        platform.NewID(),
			Name:      in.Name,
			Email:     in.Email,
			Mobile:    in.Mobile,
			Address:   in.Address,
			Role:      model.RoleUser,
			Status:    model.UserStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if in.Role != "" {
			u.Role = in.Role
		}
		if in.Status != "" {
			u.Status = in.Status
		}
		_, err := s.db.Exec(ctx,
			`INSERT INTO users (id, name, email, mobile, address, role, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			u.ID, u.Name, u.Email, u.Mobile, u.Address, u.Role, u.Status, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}
		return u, nil
	}

	existing.Name = in.Name
	if in.Status != "" {
		existing.Status = in.Status
	}
	if in.Mobile != nil {
		existing.Mobile = in.Mobile
	}
	if in.Address != nil {
		existing.Address = in.Address
	}
	if in.Role != "" {
		existing.Role = in.Role
	}
	existing.UpdatedAt = now

	_, err = s.db.Exec(ctx,
		`UPDATE users SET name = $2, mobile = $3, address = $4, role = $5, status = $6, updated_at = $7
		 WHERE id = $1`,
		existing.ID, existing.Name, existing.Mobile, existing.Address, existing.Role, existing.Status, existing.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return existing, nil
}

func (s *UserService) findByEmailOrMobile(ctx context.Context, email string, mobile *string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE email = $1 OR ($2::text IS NOT NULL AND mobile = $2)
		 LIMIT 1`,
		email, mobile,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.Address, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches one account.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.Address, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// SetManager stores the ledger address and issuer role hint after a
// successful on-chain role grant.
func (s *UserService) SetManager(ctx context.Context, id, address string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET role = $2, address = $3, updated_at = now() WHERE id = $1`,
		id, model.RoleIssuer, address,
	)
	if err != nil {
		return fmt.Errorf("set manager on user %s: %w", id, err)
	}
	return nil
}

// ClearManager removes the ledger address and resets the role hint after a
// successful on-chain role revocation.
func (s *UserService) ClearManager(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET role = $2, address = NULL, updated_at = now() WHERE id = $1`,
		id, model.RoleUser,
	)
	if err != nil {
		return fmt.Errorf("clear manager on user %s: %w", id, err)
	}
	return nil
}
