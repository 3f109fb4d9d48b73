package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var contentHashRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

func init() {
	validate.RegisterValidation("content_hash", func(fl validator.FieldLevel) bool {
		return contentHashRegex.MatchString(fl.Field().String())
	})
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

func RequireID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing required ID")
	}
	return s, nil
}

// RequireHash checks a path or query value against the 0x-prefixed
// 32-byte hex digest format.
func RequireHash(s string) (string, error) {
	if !contentHashRegex.MatchString(s) {
		return "", fmt.Errorf("invalid content hash")
	}
	return s, nil
}
