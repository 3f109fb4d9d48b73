package handler

import (
	"errors"
	"net/http"

	"github.com/inovuslabs/certanchor/internal/api/response"
	"github.com/inovuslabs/certanchor/internal/core"
	"github.com/inovuslabs/certanchor/internal/ledger"
)

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrDuplicateCertificate),
		errors.Is(err, core.ErrAlreadyRevoked),
		errors.Is(err, core.ErrRoleAlreadyGranted),
		errors.Is(err, core.ErrRoleNotGranted),
		errors.Is(err, core.ErrNoLedgerAddress):
		response.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrUnauthorized):
		response.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, core.ErrNotFound), errors.Is(err, ledger.ErrTxNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrTimeout):
		response.WriteError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, ledger.ErrUnavailable),
		errors.Is(err, ledger.ErrRejected),
		errors.Is(err, ledger.ErrReverted):
		response.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
