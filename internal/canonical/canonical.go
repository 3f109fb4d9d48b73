// Package canonical turns a certificate's semantic fields into the
// deterministic string that gets hashed and anchored on the ledger.
// The field set and their order are versioned constants: changing either
// changes every fingerprint, so they must never be edited in place.
package canonical

import (
	"encoding/hex"
	"regexp"

	"golang.org/x/crypto/sha3"
)

// Fields is the v1 field set. Values are positional; a missing value
// still occupies its slot as an empty string.
type Fields struct {
	CertificateID string
	RecipientName string
	EventID       string
	IssueDate     string
	IssuedBy      string
}

// Delimiter joins the sanitized field values.
const Delimiter = " | "

var whitespaceRun = regexp.MustCompile(`\s+`)

// sanitize collapses every whitespace run (including leading/trailing)
// to a single underscore so that "Jane  Doe" and "Jane Doe" produce
// different inputs than "JaneDoe" but identical inputs regardless of
// the kind of whitespace used.
func sanitize(v string) string {
	return whitespaceRun.ReplaceAllString(v, "_")
}

// Input builds the canonical hash input for the v1 field order:
// certificate id, recipient name, event id, issue date, issuing account id.
func Input(f Fields) string {
	parts := []string{
		sanitize(f.CertificateID),
		sanitize(f.RecipientName),
		sanitize(f.EventID),
		sanitize(f.IssueDate),
		sanitize(f.IssuedBy),
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += Delimiter + p
	}
	return out
}

// Fingerprint returns the keccak-256 digest of the canonical input as a
// 0x-prefixed 64-character hex string, along with the input itself.
// Identical field values always yield the identical digest.
func Fingerprint(f Fields) (digest string, input string) {
	input = Input(f)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(input))
	return "0x" + hex.EncodeToString(h.Sum(nil)), input
}
