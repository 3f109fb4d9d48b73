package request

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireID_Valid(t *testing.T) {
	result, err := RequireID("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", result)
}

func TestRequireID_Empty(t *testing.T) {
	_, err := RequireID("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required ID")
}

func TestRequireHash_Valid(t *testing.T) {
	hash := "0x" + strings.Repeat("ab", 32)
	result, err := RequireHash(hash)
	require.NoError(t, err)
	assert.Equal(t, hash, result)
}

func TestRequireHash_Invalid(t *testing.T) {
	for _, bad := range []string{
		"",
		"abc",
		strings.Repeat("ab", 32),
		"0x" + strings.Repeat("ab", 31),
		"0x" + strings.Repeat("zz", 32),
		"0x" + strings.Repeat("ab", 32) + "ff",
	} {
		_, err := RequireHash(bad)
		assert.Error(t, err, bad)
	}
}

func TestDecode_ValidIssueRequest(t *testing.T) {
	body := `{
		"certificate_id": "CERT-001",
		"name": "Jane Doe",
		"email": "jane@example.com",
		"mobile": "9999999999",
		"event_id": "EVT-1",
		"certificate_url": "https://assets.example.com/cert-001.png",
		"issue_date": "2024-01-01"
	}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var payload IssueCertificate
	err = Decode(r, &payload)
	require.NoError(t, err)
	assert.Equal(t, "CERT-001", payload.CertificateID)
	assert.Equal(t, "Jane Doe", payload.RecipientName)
}

func TestDecode_InvalidJSON(t *testing.T) {
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{not valid json}"))
	require.NoError(t, err)

	var payload IssueCertificate
	err = Decode(r, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecode_MissingRequiredField(t *testing.T) {
	body := `{"certificate_id": "CERT-001", "reason": ""}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var payload RevokeCertificate
	err = Decode(r, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestDecode_BadEmail(t *testing.T) {
	body := `{
		"address": "0x1111111111111111111111111111111111111111",
		"name": "New Manager",
		"email": "not-an-email",
		"mobile": "7777777777"
	}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var payload GrantManager
	err = Decode(r, &payload)
	require.Error(t, err)
}

func TestDecode_BadLedgerAddress(t *testing.T) {
	body := `{
		"address": "0x1234",
		"name": "New Manager",
		"email": "manager@example.com",
		"mobile": "7777777777"
	}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var payload GrantManager
	err = Decode(r, &payload)
	require.Error(t, err)
}
