package core

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/inovuslabs/certanchor/internal/model"
	"github.com/inovuslabs/certanchor/internal/platform"
)

// APIKeyService manages the API keys that bind requests to accounts.
type APIKeyService struct {
	db DB
}

func NewAPIKeyService(db DB) *APIKeyService {
	return &APIKeyService{db: db}
}

// Create generates a new API key for a user, stores its hash, and returns
// the model along with the raw key. The raw key is shown exactly once.
func (s *APIKeyService) Create(ctx context.Context, userID, name string) (*model.APIKey, string, error) {
	if userID == "" || name == "" {
		return nil, "", fmt.Errorf("%w: user_id and name are required", ErrInvalidInput)
	}
	if _, err := NewUserService(s.db).GetByID(ctx, userID); err != nil {
		return nil, "", err
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, "", fmt.Errorf("generate api key: %w", err)
	}
	rawKey := "anc_" + hex.EncodeToString(rawBytes)

	hash := sha256.Sum256([]byte(rawKey))
	keyHash := hex.EncodeToString(hash[:])
	keyPrefix := rawKey[:12] // "anc_" + first 8 hex chars

	key := &model.APIKey{
		ID:        platform.NewID(),
		UserID:    userID,
		Name:      name,
		KeyPrefix: keyPrefix,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO api_keys (id, user_id, name, key_hash, key_prefix, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		key.ID, key.UserID, key.Name, keyHash, key.KeyPrefix, key.CreatedAt,
	)
	if err != nil {
		return nil, "", fmt.Errorf("insert api key: %w", err)
	}
	return key, rawKey, nil
}
