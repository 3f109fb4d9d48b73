package handler

import (
	"net/http"
	"time"

	"github.com/inovuslabs/certanchor/internal/api/response"
	"github.com/inovuslabs/certanchor/internal/core"
	"github.com/inovuslabs/certanchor/internal/model"
)

type Audit struct {
	svc *core.AuditService
}

func NewAudit(svc *core.AuditService) *Audit {
	return &Audit{svc: svc}
}

// List returns audit entries newest first. Supports user_id, action,
// from and to (RFC3339) query filters.
func (h *Audit) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.AuditFilter{
		UserID: q.Get("user_id"),
		Action: q.Get("action"),
	}

	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filter.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.WriteError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filter.To = &ts
	}

	logs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}

	response.WriteJSON(w, http.StatusOK, logs)
}
