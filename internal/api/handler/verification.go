package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inovuslabs/certanchor/internal/api/request"
	"github.com/inovuslabs/certanchor/internal/api/response"
	"github.com/inovuslabs/certanchor/internal/core"
)

type Verification struct {
	svc *core.VerificationService
}

func NewVerification(svc *core.VerificationService) *Verification {
	return &Verification{svc: svc}
}

// VerifyHash checks a fingerprint against the ledger and returns the
// matching record when one exists.
func (h *Verification) VerifyHash(w http.ResponseWriter, r *http.Request) {
	hash, err := request.RequireHash(chi.URLParam(r, "hash"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.VerifyHash(r.Context(), hash)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, res)
}

// Get returns one certificate record, or 204 when the ID is unknown.
func (h *Verification) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.GetByCertificateID(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, view)
}

// Search matches certificate records by recipient name or certificate ID.
func (h *Verification) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		response.WriteError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	results, err := h.svc.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, results)
}

// Transaction returns ledger transaction details via the explorer API.
func (h *Verification) Transaction(w http.ResponseWriter, r *http.Request) {
	txHash, err := request.RequireHash(chi.URLParam(r, "txHash"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.svc.Transaction(r.Context(), txHash)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, tx)
}
