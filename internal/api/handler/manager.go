package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/inovuslabs/certanchor/internal/api/middleware"
	"github.com/inovuslabs/certanchor/internal/api/request"
	"github.com/inovuslabs/certanchor/internal/api/response"
	"github.com/inovuslabs/certanchor/internal/core"
)

type Manager struct {
	svc *core.ManagerService
}

func NewManager(svc *core.ManagerService) *Manager {
	return &Manager{svc: svc}
}

// Grant gives an address the hash-manager role and binds it to an account.
func (h *Manager) Grant(w http.ResponseWriter, r *http.Request) {
	var req request.GrantManager
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.GrantManager(r.Context(), core.GrantManagerRequest{
		Address: req.Address,
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
	}, mw.GetUser(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, res)
}

// Revoke removes the hash-manager role from the account's address.
func (h *Manager) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, err := request.RequireID(chi.URLParam(r, "userID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.RevokeManager(r.Context(), userID, mw.GetUser(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, res)
}
