package handler

import (
	"net/http"

	mw "github.com/inovuslabs/certanchor/internal/api/middleware"
	"github.com/inovuslabs/certanchor/internal/api/request"
	"github.com/inovuslabs/certanchor/internal/api/response"
	"github.com/inovuslabs/certanchor/internal/core"
)

type Certificate struct {
	issuance   *core.CertificateService
	revocation *core.RevocationService
}

func NewCertificate(issuance *core.CertificateService, revocation *core.RevocationService) *Certificate {
	return &Certificate{issuance: issuance, revocation: revocation}
}

// Issue anchors a certificate fingerprint on the ledger and persists the
// record once confirmed.
func (h *Certificate) Issue(w http.ResponseWriter, r *http.Request) {
	var req request.IssueCertificate
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.issuance.Issue(r.Context(), core.IssueRequest{
		CertificateID: req.CertificateID,
		RecipientName: req.RecipientName,
		Email:         req.Email,
		Mobile:        req.Mobile,
		EventID:       req.EventID,
		URL:           req.URL,
		IssueDate:     req.IssueDate,
	}, mw.GetUser(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, res)
}

// Revoke flips an anchored certificate to revoked on the ledger and in
// the record store.
func (h *Certificate) Revoke(w http.ResponseWriter, r *http.Request) {
	var req request.RevokeCertificate
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.revocation.Revoke(r.Context(), req.CertificateID, req.Reason, mw.GetUser(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, res)
}
