package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/inovuslabs/certanchor/internal/api/response"
	"github.com/inovuslabs/certanchor/internal/model"
)

type contextKey string

const userKey contextKey = "authenticated_user"

// Querier is the subset of pgxpool.Pool the auth middleware needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Auth returns a middleware that validates the X-API-Key header against
// the api_keys table and attaches the owning account to the request
// context.
func Auth(db Querier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing API key")
				return
			}

			hash := sha256.Sum256([]byte(key))
			keyHash := hex.EncodeToString(hash[:])

			var u model.User
			err := db.QueryRow(r.Context(),
				`SELECT u.id, u.name, u.email, u.mobile, u.address, u.role, u.status, u.created_at, u.updated_at
				 FROM api_keys k
				 JOIN users u ON u.id = k.user_id
				 WHERE k.key_hash = $1 AND k.revoked_at IS NULL`, keyHash,
			).Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.Address, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid API key")
				return
			}
			if u.Status != model.UserStatusActive {
				response.WriteError(w, http.StatusUnauthorized, "account is not active")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, &u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated account, or nil outside the auth
// middleware.
func GetUser(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// WithUser attaches an account to the context. Used by tests and the CLI
// entrypoints that act without an HTTP request.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
