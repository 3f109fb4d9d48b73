package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyHash_MalformedHash(t *testing.T) {
	h := NewVerification(nil)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/verify/nothex", nil)
	r = withChiURLParam(r, "hash", "nothex")

	h.VerifyHash(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid content hash")
}

func TestVerifyHash_MissingPrefix(t *testing.T) {
	h := NewVerification(nil)
	bare := strings.Repeat("ab", 32)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/verify/"+bare, nil)
	r = withChiURLParam(r, "hash", bare)

	h.VerifyHash(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGet_EmptyID(t *testing.T) {
	h := NewVerification(nil)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/certificates/", nil)
	r = withChiURLParam(r, "id", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

func TestSearch_MissingQuery(t *testing.T) {
	h := NewVerification(nil)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/search", nil)

	h.Search(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "query parameter is required")
}

func TestTransaction_MalformedTxHash(t *testing.T) {
	h := NewVerification(nil)
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/transactions/0x123", nil)
	r = withChiURLParam(r, "txHash", "0x123")

	h.Transaction(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
