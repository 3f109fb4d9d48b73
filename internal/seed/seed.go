// Package seed loads bootstrap accounts from a YAML fixture. It is meant
// for first-run provisioning of admin and issuer accounts before any API
// key exists.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/inovuslabs/certanchor/internal/core"
	"github.com/inovuslabs/certanchor/internal/model"
)

type Config struct {
	Accounts []AccountDef `yaml:"accounts"`
}

type AccountDef struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Mobile  string `yaml:"mobile"`
	Address string `yaml:"address"`
	Role    string `yaml:"role"`
}

func (a AccountDef) validate() error {
	if a.Name == "" || a.Email == "" {
		return fmt.Errorf("account needs name and email")
	}
	switch a.Role {
	case "", model.RoleUser, model.RoleIssuer, model.RoleAdmin:
	default:
		return fmt.Errorf("unknown role %q", a.Role)
	}
	return nil
}

// Run upserts every account in the fixture. Existing accounts are merged,
// so re-running against the same store is safe.
func Run(ctx context.Context, path string, users *core.UserService, logger zerolog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed config: %w", err)
	}
	if len(cfg.Accounts) == 0 {
		return fmt.Errorf("seed config %s lists no accounts", path)
	}

	for _, a := range cfg.Accounts {
		if err := a.validate(); err != nil {
			return fmt.Errorf("seed account %q: %w", a.Email, err)
		}

		in := core.UpsertUser{
			Name:   a.Name,
			Email:  a.Email,
			Role:   a.Role,
			Status: model.UserStatusActive,
		}
		if a.Mobile != "" {
			mobile := a.Mobile
			in.Mobile = &mobile
		}
		if a.Address != "" {
			address := a.Address
			in.Address = &address
		}

		u, err := users.Upsert(ctx, in)
		if err != nil {
			return fmt.Errorf("seed account %q: %w", a.Email, err)
		}
		logger.Info().Str("user_id", u.ID).Str("email", u.Email).Str("role", u.Role).Msg("seeded account")
	}
	return nil
}
