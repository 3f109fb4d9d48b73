package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName    string
	HTTPListenAddr string
	LogLevel       string

	DatabaseURL string

	// Ledger node RPC and signing credential.
	LedgerRPCURL     string
	LedgerPrivateKey string
	ContractAddress  string
	ConfirmTimeout   time.Duration

	// Block-explorer read API, distinct from the node RPC.
	LedgerNetwork   string
	ExplorerAPIURL  string
	ExplorerAPIKey  string
	ExplorerBaseURL string

	// Object storage for certificate assets. Optional: media endpoints are
	// disabled when MediaBucket is empty.
	MediaEndpoint  string
	MediaRegion    string
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaURLExpiry time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:    getEnv("SERVICE_NAME", "certanchor-api"),
		HTTPListenAddr: getEnv("HTTP_LISTEN_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		LedgerRPCURL:     getEnv("LEDGER_RPC_URL", ""),
		LedgerPrivateKey: getEnv("LEDGER_PRIVATE_KEY", ""),
		ContractAddress:  getEnv("CONTRACT_ADDRESS", ""),
		ConfirmTimeout:   getEnvDuration("LEDGER_CONFIRM_TIMEOUT", 2*time.Minute),

		LedgerNetwork:   getEnv("LEDGER_NETWORK", "Ethereum Sepolia"),
		ExplorerAPIURL:  getEnv("EXPLORER_API_URL", "https://api-sepolia.etherscan.io"),
		ExplorerAPIKey:  getEnv("EXPLORER_API_KEY", ""),
		ExplorerBaseURL: getEnv("EXPLORER_BASE_URL", "https://sepolia.etherscan.io"),

		MediaEndpoint:  getEnv("MEDIA_S3_ENDPOINT", ""),
		MediaRegion:    getEnv("MEDIA_S3_REGION", "us-east-1"),
		MediaAccessKey: getEnv("MEDIA_S3_ACCESS_KEY", ""),
		MediaSecretKey: getEnv("MEDIA_S3_SECRET_KEY", ""),
		MediaBucket:    getEnv("MEDIA_S3_BUCKET", ""),
		MediaURLExpiry: getEnvDuration("MEDIA_URL_EXPIRY", 15*time.Minute),
	}

	return cfg, nil
}

// Validate checks that every setting required to run the API is present.
// Missing required configuration is a fatal startup condition, not a
// runtime error.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", c.DatabaseURL},
		{"LEDGER_RPC_URL", c.LedgerRPCURL},
		{"LEDGER_PRIVATE_KEY", c.LedgerPrivateKey},
		{"CONTRACT_ADDRESS", c.ContractAddress},
		{"EXPLORER_API_URL", c.ExplorerAPIURL},
		{"EXPLORER_BASE_URL", c.ExplorerBaseURL},
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.MediaBucket != "" {
		if c.MediaEndpoint == "" || c.MediaAccessKey == "" || c.MediaSecretKey == "" {
			return fmt.Errorf("MEDIA_S3_ENDPOINT, MEDIA_S3_ACCESS_KEY and MEDIA_S3_SECRET_KEY are required when MEDIA_S3_BUCKET is set")
		}
	}

	return nil
}

// MediaEnabled reports whether pre-signed upload URLs can be issued.
func (c *Config) MediaEnabled() bool {
	return c.MediaBucket != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}
